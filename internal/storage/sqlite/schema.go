// ABOUTME: SQLite database schema for profile and embedding storage
// ABOUTME: Creates tables, indexes, and the cascading profile->embedding link
package sqlite

// Schema contains all SQL statements for database initialization.
// partition_name scopes every row to a named storage partition; all
// queries filter on it.
const Schema = `
-- Profile records
CREATE TABLE IF NOT EXISTS profiles (
    partition_name TEXT NOT NULL,
    id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    linkedin_id TEXT,
    full_name TEXT NOT NULL,
    headline TEXT,
    industry TEXT,
    location TEXT,
    summary TEXT,
    profile_url TEXT,
    profile_picture_url TEXT,
    experiences TEXT,
    educations TEXT,
    skills TEXT,
    certifications TEXT,
    languages TEXT,
    raw_profile_data TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (partition_name, id)
);

-- Embedding vectors, at most one per profile
CREATE TABLE IF NOT EXISTS embeddings (
    id TEXT PRIMARY KEY,
    partition_name TEXT NOT NULL,
    profile_id TEXT NOT NULL,
    vector BLOB NOT NULL,
    model TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (partition_name, profile_id),
    FOREIGN KEY (partition_name, profile_id)
        REFERENCES profiles(partition_name, id) ON DELETE CASCADE
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_profiles_user ON profiles(partition_name, user_id);
CREATE INDEX IF NOT EXISTS idx_embeddings_profile ON embeddings(partition_name, profile_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
