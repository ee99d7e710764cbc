package store

import "codeberg.org/mutker/hwprint/internal/errors"

const (
	ErrInvalidDBPath = errors.ErrorCode("store_invalid_db_path")
	ErrInvalidLimit  = errors.ErrorCode("store_invalid_limit")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("store_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("store_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("store_schema_migration_failed")

	// Storage Errors
	ErrStorageAccess = errors.ErrorCode("store_storage_access_failed")
	ErrDecodeRecord  = errors.ErrorCode("store_decode_record_failed")
	ErrStorageInit   = errors.ErrInitStore
	ErrStorageClose  = errors.ErrCloseStore
)
