package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrImportNotFound is returned when no import has the requested ID
var ErrImportNotFound = errors.New("import not found")

// SaveImport stores a parsed resume and returns the created import
func (db *DB) SaveImport(ctx context.Context, input *ImportInput) (*Import, error) {
	if input == nil || input.Resume == nil {
		return nil, fmt.Errorf("failed to save import: record is required")
	}

	record, err := json.Marshal(input.Resume)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	imp := &Import{
		ID:         uuid.New(),
		FileName:   input.FileName,
		TextHash:   input.TextHash,
		Pages:      input.Pages,
		TextLength: input.TextLength,
		Confidence: input.Resume.Confidence,
		Resume:     input.Resume,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resume_imports (id, file_name, text_hash, pages, text_length, confidence, record)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		imp.ID, imp.FileName, imp.TextHash, imp.Pages, imp.TextLength, imp.Confidence, record,
	).Scan(&imp.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save import: %w", err)
	}
	return imp, nil
}

// GetImport retrieves an import and its record by ID
func (db *DB) GetImport(ctx context.Context, id uuid.UUID) (*Import, error) {
	var imp Import
	var record []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, file_name, text_hash, pages, text_length, confidence, record, created_at
		 FROM resume_imports WHERE id = $1`,
		id,
	).Scan(&imp.ID, &imp.FileName, &imp.TextHash, &imp.Pages, &imp.TextLength, &imp.Confidence, &record, &imp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImportNotFound
		}
		return nil, fmt.Errorf("failed to get import: %w", err)
	}

	if err := json.Unmarshal(record, &imp.Resume); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &imp, nil
}

// ListImports retrieves the most recent imports, newest first
func (db *DB) ListImports(ctx context.Context, limit int) ([]ImportSummary, error) {
	limit = clampLimit(limit)

	rows, err := db.pool.Query(ctx,
		`SELECT id, file_name, text_hash, confidence, created_at
		 FROM resume_imports ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	imports := []ImportSummary{}
	for rows.Next() {
		var s ImportSummary
		if err := rows.Scan(&s.ID, &s.FileName, &s.TextHash, &s.Confidence, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	return imports, nil
}

// DeleteImport removes an import by ID
func (db *DB) DeleteImport(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resume_imports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete import: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrImportNotFound
	}
	return nil
}

// clampLimit applies the default and maximum page size
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
