package mongorepo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/marketplace/internal/domain"
)

// AddCartLine applies addLineUpdate with one findOneAndUpdate. The returned
// pre-image says whether the pair was already in the cart.
func (r *MongoRepo) AddCartLine(ctx context.Context, userID, productID, variantID uuid.UUID) (domain.AddResult, error) {
	pid, vid := productID.String(), variantID.String()
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.D{{Key: "cart", Value: 1}})

	var before userDoc
	err := r.DB.Collection(usersColl).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: userID.String()}},
		addLineUpdate(pid, vid, r.now()),
		opts,
	).Decode(&before)
	if err != nil {
		return domain.AddResult{}, mapErr(err)
	}

	for _, l := range before.Cart {
		if l.ProductID == pid && l.VariantID == vid {
			return domain.AddResult{Outcome: domain.CartLineIncremented, Quantity: l.Quantity + 1}, nil
		}
	}
	return domain.AddResult{Outcome: domain.CartLineCreated, Quantity: 1}, nil
}

func (r *MongoRepo) RemoveCartLine(ctx context.Context, userID, productID, variantID uuid.UUID) (bool, error) {
	res, err := r.DB.Collection(usersColl).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID.String()}},
		removeLineUpdate(productID.String(), variantID.String()),
	)
	if err != nil {
		return false, mapErr(err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoRepo) CartLines(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	var u userDoc
	err := r.DB.Collection(usersColl).FindOne(ctx,
		bson.D{{Key: "_id", Value: userID.String()}},
		options.FindOne().SetProjection(bson.D{{Key: "cart", Value: 1}}),
	).Decode(&u)
	if err != nil {
		return nil, mapErr(err)
	}
	if len(u.Cart) == 0 {
		return []domain.CartLine{}, nil
	}

	productIDs := make([]string, 0, len(u.Cart))
	for _, l := range u.Cart {
		productIDs = append(productIDs, l.ProductID)
	}
	products, err := r.productsByID(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	sellerIDs := make([]string, 0, len(products))
	for _, p := range products {
		sellerIDs = append(sellerIDs, p.SellerID)
	}
	names, err := r.userNames(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CartLine, 0, len(u.Cart))
	for _, l := range u.Cart {
		line := domain.CartLine{
			ProductID: parseID(l.ProductID),
			VariantID: parseID(l.VariantID),
			Quantity:  l.Quantity,
			AddedAt:   l.AddedAt,
		}
		if d, ok := products[l.ProductID]; ok {
			p := d.toDomain()
			line.Name = p.Name
			line.Images = p.Images
			line.Price = p.FirstPrice()
			line.SellerName = names[d.SellerID]
		}
		out = append(out, line)
	}
	return out, nil
}

func (r *MongoRepo) productsByID(ctx context.Context, ids []string) (map[string]*productDoc, error) {
	cur, err := r.DB.Collection(productsColl).Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, mapErr(err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapErr(err)
	}
	out := make(map[string]*productDoc, len(docs))
	for i := range docs {
		out[docs[i].ID] = &docs[i]
	}
	return out, nil
}

func (r *MongoRepo) userNames(ctx context.Context, ids []string) (map[string]string, error) {
	cur, err := r.DB.Collection(usersColl).Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}},
		options.Find().SetProjection(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, mapErr(err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapErr(err)
	}
	out := make(map[string]string, len(docs))
	for _, d := range docs {
		out[d.ID] = d.Name
	}
	return out, nil
}
