package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ store.Provider = &Provider{}

type Provider struct {
	database string

	client *mongo.Client

	files      *mongo.Collection
	paragraphs *mongo.Collection
	keywords   *mongo.Collection
}

type fileDocument struct {
	Hash     string    `bson:"hash"`
	Name     string    `bson:"name"`
	Uploaded time.Time `bson:"uploaded"`
}

type paragraphDocument struct {
	FileHash string `bson:"file_hash"`
	Hash     string `bson:"hash"`
	Contents string `bson:"contents"`
	Position int    `bson:"position"`
}

type keywordDocument struct {
	ParagraphHash string  `bson:"paragraph_hash"`
	Keyword       string  `bson:"keyword"`
	Score         float64 `bson:"score"`
}

func New(uri string, options ...Option) (*Provider, error) {
	p := &Provider{
		database: "parnaxus",
	}

	for _, option := range options {
		option(p)
	}

	client, err := connect(uri)

	if err != nil {
		return nil, err
	}

	db := client.Database(p.database)

	p.client = client

	p.files = db.Collection("files")
	p.paragraphs = db.Collection("paragraphs")
	p.keywords = db.Collection("keywords")

	return p, nil
}

func connect(uri string) (*mongo.Client, error) {
	return mongo.Connect(options.Client().ApplyURI(uri))
}

func (p *Provider) Init(ctx context.Context, force bool) error {
	if force {
		for _, c := range []*mongo.Collection{p.keywords, p.paragraphs, p.files} {
			if err := c.Drop(ctx); err != nil {
				return err
			}
		}
	}

	indexes := []struct {
		collection *mongo.Collection
		model      mongo.IndexModel
	}{
		{p.files, mongo.IndexModel{
			Keys:    bson.D{{Key: "hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{p.paragraphs, mongo.IndexModel{
			Keys:    bson.D{{Key: "file_hash", Value: 1}, {Key: "hash", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{p.paragraphs, mongo.IndexModel{
			Keys: bson.D{{Key: "hash", Value: 1}},
		}},
		{p.keywords, mongo.IndexModel{
			Keys:    bson.D{{Key: "paragraph_hash", Value: 1}, {Key: "keyword", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for _, i := range indexes {
		if _, err := i.collection.Indexes().CreateOne(ctx, i.model); err != nil {
			return err
		}
	}

	return nil
}

func (p *Provider) insert(ctx context.Context, c *mongo.Collection, document any) error {
	_, err := c.InsertOne(ctx, document)

	if mongo.IsDuplicateKeyError(err) {
		return store.ErrExists
	}

	return err
}

func (p *Provider) AddFile(ctx context.Context, file store.File) error {
	return p.insert(ctx, p.files, fileDocument{
		Hash:     file.Hash,
		Name:     file.Name,
		Uploaded: file.Uploaded,
	})
}

func (p *Provider) GetFile(ctx context.Context, hash string) (*store.File, error) {
	var d fileDocument

	if err := p.files.FindOne(ctx, bson.D{{Key: "hash", Value: hash}}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}

		return nil, err
	}

	file := toFile(d)
	return &file, nil
}

func (p *Provider) ListFiles(ctx context.Context) ([]store.File, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded", Value: -1}, {Key: "hash", Value: 1}})

	cursor, err := p.files.Find(ctx, bson.D{}, opts)

	if err != nil {
		return nil, err
	}

	defer cursor.Close(ctx)

	result := make([]store.File, 0)

	for cursor.Next(ctx) {
		var d fileDocument

		if err := cursor.Decode(&d); err != nil {
			return nil, err
		}

		result = append(result, toFile(d))
	}

	return result, cursor.Err()
}

func toFile(d fileDocument) store.File {
	return store.File{
		Hash:     d.Hash,
		Name:     d.Name,
		Uploaded: d.Uploaded.UTC(),
	}
}

func (p *Provider) AddParagraph(ctx context.Context, paragraph store.Paragraph) error {
	return p.insert(ctx, p.paragraphs, paragraphDocument(paragraph))
}

func (p *Provider) GetParagraph(ctx context.Context, hash string) (*store.Paragraph, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "file_hash", Value: 1}, {Key: "position", Value: 1}})

	var d paragraphDocument

	if err := p.paragraphs.FindOne(ctx, bson.D{{Key: "hash", Value: hash}}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}

		return nil, err
	}

	paragraph := store.Paragraph(d)
	return &paragraph, nil
}

func (p *Provider) ListParagraphs(ctx context.Context, fileHash string) ([]store.Paragraph, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cursor, err := p.paragraphs.Find(ctx, bson.D{{Key: "file_hash", Value: fileHash}}, opts)

	if err != nil {
		return nil, err
	}

	defer cursor.Close(ctx)

	var result []store.Paragraph

	for cursor.Next(ctx) {
		var d paragraphDocument

		if err := cursor.Decode(&d); err != nil {
			return nil, err
		}

		result = append(result, store.Paragraph(d))
	}

	return result, cursor.Err()
}

func (p *Provider) AddKeyword(ctx context.Context, keyword store.Keyword) error {
	return p.insert(ctx, p.keywords, keywordDocument{
		ParagraphHash: keyword.ParagraphHash,
		Keyword:       keyword.Text,
		Score:         keyword.Score,
	})
}

func (p *Provider) FileKeywords(ctx context.Context, fileHash string) ([]store.Keyword, error) {
	paragraphs, err := p.ListParagraphs(ctx, fileHash)

	if err != nil {
		return nil, err
	}

	if len(paragraphs) == 0 {
		return nil, nil
	}

	hashes := make([]string, 0, len(paragraphs))

	for _, paragraph := range paragraphs {
		hashes = append(hashes, paragraph.Hash)
	}

	keywords, err := p.findKeywords(ctx, bson.D{{Key: "paragraph_hash", Value: bson.D{{Key: "$in", Value: hashes}}}})

	if err != nil {
		return nil, err
	}

	return store.MergeKeywords(keywords), nil
}

func (p *Provider) ParagraphKeywords(ctx context.Context, hash string) ([]store.Keyword, error) {
	keywords, err := p.findKeywords(ctx, bson.D{{Key: "paragraph_hash", Value: hash}})

	if err != nil {
		return nil, err
	}

	store.SortKeywords(keywords)

	return keywords, nil
}

func (p *Provider) findKeywords(ctx context.Context, filter bson.D) ([]store.Keyword, error) {
	cursor, err := p.keywords.Find(ctx, filter)

	if err != nil {
		return nil, err
	}

	defer cursor.Close(ctx)

	var result []store.Keyword

	for cursor.Next(ctx) {
		var d keywordDocument

		if err := cursor.Decode(&d); err != nil {
			return nil, err
		}

		result = append(result, store.Keyword{
			ParagraphHash: d.ParagraphHash,
			Text:          d.Keyword,
			Score:         d.Score,
		})
	}

	return result, cursor.Err()
}

func (p *Provider) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return p.client.Disconnect(ctx)
}
