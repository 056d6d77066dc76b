package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/huandu/go-sqlbuilder"
	_ "modernc.org/sqlite"
)

var _ store.Provider = &Provider{}

type Provider struct {
	path string

	db *sql.DB
}

func New(options ...Option) (*Provider, error) {
	p := &Provider{}

	for _, option := range options {
		option(p)
	}

	dsn := ":memory:"

	if p.path != "" && p.path != ":memory:" {
		dsn = "file:" + p.path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)

	if err != nil {
		return nil, err
	}

	// a single connection keeps in-memory databases shared and serializes writers
	db.SetMaxOpenConns(1)

	p.db = db

	return p, nil
}

func (p *Provider) Init(ctx context.Context, force bool) error {
	tx, err := p.db.BeginTx(ctx, nil)

	if err != nil {
		return err
	}

	defer tx.Rollback()

	if force {
		for _, table := range []string{"keywords", "paragraphs", "files"} {
			if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return err
			}
		}
	}

	for _, ctb := range schema() {
		query, args := ctb.Build()

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS paragraphs_hash ON paragraphs (hash)"); err != nil {
		return err
	}

	return tx.Commit()
}

func schema() []*sqlbuilder.CreateTableBuilder {
	files := sqlbuilder.SQLite.NewCreateTableBuilder()
	files.CreateTable("files").IfNotExists().
		Define("hash", "TEXT", "NOT NULL", "PRIMARY KEY").
		Define("name", "TEXT", "NOT NULL").
		Define("uploaded", "INTEGER", "NOT NULL")

	paragraphs := sqlbuilder.SQLite.NewCreateTableBuilder()
	paragraphs.CreateTable("paragraphs").IfNotExists().
		Define("file_hash", "TEXT", "NOT NULL", "REFERENCES files (hash)").
		Define("hash", "TEXT", "NOT NULL").
		Define("contents", "TEXT", "NOT NULL").
		Define("position", "INTEGER", "NOT NULL").
		Define("PRIMARY KEY", "(file_hash, hash, position)")

	keywords := sqlbuilder.SQLite.NewCreateTableBuilder()
	keywords.CreateTable("keywords").IfNotExists().
		Define("paragraph_hash", "TEXT", "NOT NULL").
		Define("keyword", "TEXT", "NOT NULL").
		Define("score", "REAL", "NOT NULL").
		Define("PRIMARY KEY", "(paragraph_hash, keyword)")

	return []*sqlbuilder.CreateTableBuilder{files, paragraphs, keywords}
}

// insert runs an INSERT OR IGNORE and reports ErrExists when nothing was written.
func (p *Provider) insert(ctx context.Context, ib *sqlbuilder.InsertBuilder) error {
	query, args := ib.Build()

	result, err := p.db.ExecContext(ctx, query, args...)

	if err != nil {
		return err
	}

	n, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if n == 0 {
		return store.ErrExists
	}

	return nil
}

func (p *Provider) AddFile(ctx context.Context, file store.File) error {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertIgnoreInto("files").
		Cols("hash", "name", "uploaded").
		Values(file.Hash, file.Name, file.Uploaded.UnixMilli())

	return p.insert(ctx, ib)
}

func (p *Provider) GetFile(ctx context.Context, hash string) (*store.File, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("hash", "name", "uploaded").
		From("files").
		Where(sb.Equal("hash", hash))

	query, args := sb.Build()

	file, err := scanFile(p.db.QueryRowContext(ctx, query, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return file, nil
}

func (p *Provider) ListFiles(ctx context.Context) ([]store.File, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("hash", "name", "uploaded").
		From("files").
		OrderBy("uploaded DESC", "hash ASC")

	query, args := sb.Build()

	rows, err := p.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	result := make([]store.File, 0)

	for rows.Next() {
		file, err := scanFile(rows)

		if err != nil {
			return nil, err
		}

		result = append(result, *file)
	}

	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (*store.File, error) {
	var file store.File
	var uploaded int64

	if err := row.Scan(&file.Hash, &file.Name, &uploaded); err != nil {
		return nil, err
	}

	file.Uploaded = time.UnixMilli(uploaded).UTC()

	return &file, nil
}

func (p *Provider) AddParagraph(ctx context.Context, paragraph store.Paragraph) error {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertIgnoreInto("paragraphs").
		Cols("file_hash", "hash", "contents", "position").
		Values(paragraph.FileHash, paragraph.Hash, paragraph.Contents, paragraph.Position)

	return p.insert(ctx, ib)
}

func (p *Provider) GetParagraph(ctx context.Context, hash string) (*store.Paragraph, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("file_hash", "hash", "contents", "position").
		From("paragraphs").
		Where(sb.Equal("hash", hash)).
		OrderBy("file_hash ASC", "position ASC").
		Limit(1)

	query, args := sb.Build()

	var paragraph store.Paragraph

	err := p.db.QueryRowContext(ctx, query, args...).Scan(&paragraph.FileHash, &paragraph.Hash, &paragraph.Contents, &paragraph.Position)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &paragraph, nil
}

func (p *Provider) ListParagraphs(ctx context.Context, fileHash string) ([]store.Paragraph, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("file_hash", "hash", "contents", "position").
		From("paragraphs").
		Where(sb.Equal("file_hash", fileHash)).
		OrderBy("position ASC")

	query, args := sb.Build()

	rows, err := p.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var result []store.Paragraph

	for rows.Next() {
		var paragraph store.Paragraph

		if err := rows.Scan(&paragraph.FileHash, &paragraph.Hash, &paragraph.Contents, &paragraph.Position); err != nil {
			return nil, err
		}

		result = append(result, paragraph)
	}

	return result, rows.Err()
}

func (p *Provider) AddKeyword(ctx context.Context, keyword store.Keyword) error {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertIgnoreInto("keywords").
		Cols("paragraph_hash", "keyword", "score").
		Values(keyword.ParagraphHash, keyword.Text, keyword.Score)

	return p.insert(ctx, ib)
}

func (p *Provider) FileKeywords(ctx context.Context, fileHash string) ([]store.Keyword, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("k.keyword", "MAX(k.score) AS max_score").
		From("keywords AS k").
		Join("paragraphs AS p", "p.hash = k.paragraph_hash").
		Where(sb.Equal("p.file_hash", fileHash)).
		GroupBy("k.keyword").
		OrderBy("max_score DESC", "k.keyword ASC")

	return p.queryKeywords(ctx, sb, false)
}

func (p *Provider) ParagraphKeywords(ctx context.Context, hash string) ([]store.Keyword, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("keyword", "score", "paragraph_hash").
		From("keywords").
		Where(sb.Equal("paragraph_hash", hash)).
		OrderBy("score DESC", "keyword ASC")

	return p.queryKeywords(ctx, sb, true)
}

func (p *Provider) queryKeywords(ctx context.Context, sb *sqlbuilder.SelectBuilder, withParagraph bool) ([]store.Keyword, error) {
	query, args := sb.Build()

	rows, err := p.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var result []store.Keyword

	for rows.Next() {
		var keyword store.Keyword

		dest := []any{&keyword.Text, &keyword.Score}

		if withParagraph {
			dest = append(dest, &keyword.ParagraphHash)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		result = append(result, keyword)
	}

	return result, rows.Err()
}

func (p *Provider) Close() error {
	return p.db.Close()
}
