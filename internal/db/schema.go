package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    -- ==========================================================================
    -- MEDIA TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS media SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS uri ON media TYPE string;
    DEFINE FIELD IF NOT EXISTS display_name ON media TYPE string;
    DEFINE FIELD IF NOT EXISTS album ON media TYPE string DEFAULT '';
    DEFINE FIELD IF NOT EXISTS captured_at ON media TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS byte_size ON media TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS mime_type ON media TYPE string DEFAULT '';
    DEFINE FIELD IF NOT EXISTS content_hash ON media TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS location ON media TYPE option<string>;
    -- Comma-joined free-form collection tags, written by the indexer
    DEFINE FIELD IF NOT EXISTS collection_tags ON media TYPE string DEFAULT '';
    -- Text recognized inside the media by the indexing pipeline (OCR)
    DEFINE FIELD IF NOT EXISTS ocr_text ON media TYPE string DEFAULT '';
    DEFINE FIELD IF NOT EXISTS labels ON media TYPE array<object> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS labels[*].name ON media TYPE string;
    DEFINE FIELD IF NOT EXISTS labels[*].confidence ON media TYPE float DEFAULT 1.0;
    DEFINE FIELD IF NOT EXISTS favorite ON media TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS trashed ON media TYPE bool DEFAULT false;

    DEFINE INDEX IF NOT EXISTS media_uri ON media FIELDS uri UNIQUE;
    DEFINE INDEX IF NOT EXISTS media_album ON media FIELDS album;
    DEFINE INDEX IF NOT EXISTS media_captured ON media FIELDS captured_at;

    -- ==========================================================================
    -- SEARCH HISTORY TABLE (append-only)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS history SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS query ON history TYPE string;
    DEFINE FIELD IF NOT EXISTS timestamp ON history TYPE int;

    DEFINE INDEX IF NOT EXISTS history_timestamp ON history FIELDS timestamp;
`
