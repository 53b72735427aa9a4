package mongorepo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

func (r *MongoRepo) CreateCategory(ctx context.Context, c *domain.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = r.now()
	doc := categoryDoc{
		ID:               c.ID.String(),
		Name:             c.Name,
		Slug:             c.Slug,
		ShortDescription: c.ShortDescription,
		Image:            c.Image,
		CreatedAt:        c.CreatedAt,
	}
	if _, err := r.DB.Collection(categoriesColl).InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *MongoRepo) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var d categoryDoc
	if err := r.DB.Collection(categoriesColl).FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.toDomain(), nil
}

func (r *MongoRepo) ListCategoryNames(ctx context.Context) ([]domain.CategoryName, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "name", Value: 1}}).
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.DB.Collection(categoriesColl).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapErr(err)
	}
	out := make([]domain.CategoryName, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.CategoryName{ID: parseID(d.ID), Name: d.Name})
	}
	return out, nil
}

// nextValue increments a named counter, creating it on first use. It is a
// single-document operation and is not tied to the product insert that
// follows.
func (r *MongoRepo) nextValue(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var c counterDoc
	err := r.DB.Collection(countersColl).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "value", Value: int64(1)}}}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, mapErr(err)
	}
	return c.Value, nil
}

func (r *MongoRepo) CreateProduct(ctx context.Context, p *domain.Product) error {
	seq, err := r.nextValue(ctx, repo.ProductsCounter)
	if err != nil {
		return err
	}
	p.Sort = seq - 1
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Variants {
		if p.Variants[i].ID == uuid.Nil {
			p.Variants[i].ID = uuid.New()
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now()
	}

	if _, err := r.DB.Collection(productsColl).InsertOne(ctx, productToDoc(p)); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *MongoRepo) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var d productDoc
	if err := r.DB.Collection(productsColl).FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.toDomain(), nil
}

func (r *MongoRepo) ListSellerProducts(ctx context.Context, q domain.ListQuery) ([]domain.CategoryGroup, error) {
	cur, err := r.DB.Collection(productsColl).Aggregate(ctx, listingPipeline(q))
	if err != nil {
		return nil, mapErr(err)
	}
	var docs []groupDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapErr(err)
	}
	out := make([]domain.CategoryGroup, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}
