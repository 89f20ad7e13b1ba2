package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leverblum/boardsctrl/internal/core/domain"
	"github.com/leverblum/boardsctrl/internal/core/ports"
)

const (
	collectionCategories = "categories"
	collectionBoards     = "boards"
	collectionSlides     = "slides"
)

// Categories, boards and slides are stored directly with their domain bson
// tags; ids are ObjectID hex strings.

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := findByID(ctx, r.col, id, &c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error) {
	return exists(ctx, r.col, bson.M{"title": title}, excludeID)
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	c.ID = primitive.NewObjectID().Hex()
	return insert(ctx, r.col, c)
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	if err := replace(ctx, r.col, c.ID, c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context, page domain.PageRequest) ([]*domain.Category, int64, error) {
	var out []*domain.Category
	total, err := findPage(ctx, r.col, bson.M{}, page, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	return out, total, nil
}

type BoardRepository struct {
	col *mongo.Collection
}

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{col: db.Collection(collectionBoards)}
}

func (r *BoardRepository) FindByID(ctx context.Context, id string) (*domain.Board, error) {
	var b domain.Board
	if err := findByID(ctx, r.col, id, &b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board: %w", err)
	}
	return &b, nil
}

func (r *BoardRepository) ExistsByTitle(ctx context.Context, categoryID, title, excludeID string) (bool, error) {
	return exists(ctx, r.col, bson.M{"category_id": categoryID, "title": title}, excludeID)
}

func (r *BoardRepository) Create(ctx context.Context, b *domain.Board) error {
	b.ID = primitive.NewObjectID().Hex()
	return insert(ctx, r.col, b)
}

func (r *BoardRepository) Update(ctx context.Context, b *domain.Board) error {
	if err := replace(ctx, r.col, b.ID, b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrBoardNotFound
		}
		return fmt.Errorf("update board: %w", err)
	}
	return nil
}

func (r *BoardRepository) List(ctx context.Context, filter ports.BoardFilter, page domain.PageRequest) ([]*domain.Board, int64, error) {
	q := bson.M{}
	if filter.CategoryID != "" {
		q["category_id"] = filter.CategoryID
	}
	var out []*domain.Board
	total, err := findPage(ctx, r.col, q, page, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("list boards: %w", err)
	}
	return out, total, nil
}

type SlideRepository struct {
	col *mongo.Collection
}

func NewSlideRepository(db *mongo.Database) *SlideRepository {
	return &SlideRepository{col: db.Collection(collectionSlides)}
}

func (r *SlideRepository) FindByID(ctx context.Context, id string) (*domain.Slide, error) {
	var s domain.Slide
	if err := findByID(ctx, r.col, id, &s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSlideNotFound
		}
		return nil, fmt.Errorf("find slide: %w", err)
	}
	return &s, nil
}

func (r *SlideRepository) Create(ctx context.Context, s *domain.Slide) error {
	s.ID = primitive.NewObjectID().Hex()
	return insert(ctx, r.col, s)
}

func (r *SlideRepository) Update(ctx context.Context, s *domain.Slide) error {
	if err := replace(ctx, r.col, s.ID, s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrSlideNotFound
		}
		return fmt.Errorf("update slide: %w", err)
	}
	return nil
}

func (r *SlideRepository) List(ctx context.Context, filter ports.SlideFilter, page domain.PageRequest) ([]*domain.Slide, int64, error) {
	q := bson.M{}
	if filter.BoardID != "" {
		q["board_id"] = filter.BoardID
	}
	var out []*domain.Slide
	total, err := findPage(ctx, r.col, q, page, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("list slides: %w", err)
	}
	return out, total, nil
}

// EnsureCatalogIndexes creates the lookup and uniqueness indexes of the
// category, board and slide collections.
func EnsureCatalogIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := db.Collection(collectionCategories).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("categories index: %w", err)
	}
	if _, err := db.Collection(collectionBoards).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("boards index: %w", err)
	}
	if _, err := db.Collection(collectionSlides).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "board_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("slides index: %w", err)
	}
	return nil
}

func findByID(ctx context.Context, col *mongo.Collection, id string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return col.FindOne(ctx, bson.M{"_id": id}).Decode(out)
}

func exists(ctx context.Context, col *mongo.Collection, filter bson.M, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func insert(ctx context.Context, col *mongo.Collection, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Conflict("El registro ya existe.")
		}
		return err
	}
	return nil
}

// replace returns mongo.ErrNoDocuments when no document has the id.
func replace(ctx context.Context, col *mongo.Collection, id string, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Conflict("El registro ya existe.")
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
