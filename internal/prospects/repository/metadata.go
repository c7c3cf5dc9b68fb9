package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// MergeMetadata merges patch into the prospect's metadata bag atomically, in
// the database, via a jsonb concatenation. Existing keys not present in patch
// are preserved, so concurrent writers of unrelated keys never clobber each
// other. The bag is never replaced wholesale.
func (r *Repository) MergeMetadata(ctx context.Context, id, organizationID uuid.UUID, patch map[string]any) error {
	encoded, err := json.Marshal(patch)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE prospects
		SET metadata = COALESCE(metadata, '{}'::jsonb) || $3::jsonb, updated_at = now()
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID, encoded)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetMetadataFlagIfAbsent merges patch into the metadata bag only when flag is
// not yet a key of the bag. Returns true when this call performed the write,
// false when another writer got there first. Used for workflow idempotency
// flags: the "someone else just set it" outcome is the same as "it was already
// set" from the caller's perspective.
func (r *Repository) SetMetadataFlagIfAbsent(ctx context.Context, id, organizationID uuid.UUID, flag string, patch map[string]any) (bool, error) {
	encoded, err := json.Marshal(patch)
	if err != nil {
		return false, err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE prospects
		SET metadata = COALESCE(metadata, '{}'::jsonb) || $4::jsonb, updated_at = now()
		WHERE id = $1 AND organization_id = $2
		  AND NOT (COALESCE(metadata, '{}'::jsonb) ? $3)
	`, id, organizationID, flag, encoded)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MetadataString extracts a string value from a metadata bag.
func MetadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	if value, ok := metadata[key].(string); ok {
		return value
	}
	return ""
}

// MetadataTruthy reports whether a metadata key holds a truthy value. The bag
// is written by several features over time, so both bool true and the string
// "true" count.
func MetadataTruthy(metadata map[string]any, key string) bool {
	if metadata == nil {
		return false
	}
	switch v := metadata[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	default:
		return false
	}
}
