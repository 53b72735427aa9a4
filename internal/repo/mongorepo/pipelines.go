package mongorepo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Skotchmaster/marketplace/internal/domain"
)

func sortField(f domain.SortField) string {
	switch f {
	case domain.SortByCreatedAt:
		return "created_at"
	case domain.SortBySold:
		return "sold_quantity"
	case domain.SortByFirstPrice:
		return "first_price"
	default:
		return "avg_rating"
	}
}

func sortDoc(s domain.SortSpec) bson.D {
	dir := 1
	if s.Desc {
		dir = -1
	}
	return bson.D{{Key: sortField(s.Field), Value: dir}, {Key: "_id", Value: 1}}
}

// listingPipeline filters one seller's products, sorts and pages them, then
// groups the page by category. Groups are ordered by the position of their
// first product in the page.
func listingPipeline(q domain.ListQuery) mongo.Pipeline {
	sort := sortDoc(q.Sort)
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "seller_id", Value: q.SellerID.String()}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "images", Value: 1},
			{Key: "sold_quantity", Value: 1},
			{Key: "avg_rating", Value: 1},
			{Key: "category_id", Value: 1},
			{Key: "category_name", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "first_price", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$variants.price", 0}}}},
		}}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: int64(q.Offset)}},
		{{Key: "$limit", Value: int64(q.Limit)}},
		{{Key: "$setWindowFields", Value: bson.D{
			{Key: "sortBy", Value: sort},
			{Key: "output", Value: bson.D{{Key: "rank", Value: bson.D{{Key: "$documentNumber", Value: bson.D{}}}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category_id"},
			{Key: "category_name", Value: bson.D{{Key: "$first", Value: "$category_name"}}},
			{Key: "first", Value: bson.D{{Key: "$min", Value: "$rank"}}},
			{Key: "products", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "_id", Value: "$_id"},
				{Key: "name", Value: "$name"},
				{Key: "images", Value: "$images"},
				{Key: "sold_quantity", Value: "$sold_quantity"},
				{Key: "avg_rating", Value: "$avg_rating"},
				{Key: "category_id", Value: "$category_id"},
				{Key: "category_name", Value: "$category_name"},
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "first", Value: 1}}}},
	}
}

func pairMatch(productID, variantID string) bson.D {
	return bson.D{{Key: "$and", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$$l.product_id", productID}}},
		bson.D{{Key: "$eq", Value: bson.A{"$$l.variant_id", variantID}}},
	}}}
}

// addLineUpdate is an update pipeline on a user document. If the cart has a
// line for the exact (product, variant) pair its quantity is increased by
// one, otherwise a new line with quantity 1 is appended.
func addLineUpdate(productID, variantID string, now time.Time) mongo.Pipeline {
	cart := bson.D{{Key: "$ifNull", Value: bson.A{"$cart", bson.A{}}}}
	match := pairMatch(productID, variantID)

	hasLine := bson.D{{Key: "$gt", Value: bson.A{
		bson.D{{Key: "$size", Value: bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: cart},
			{Key: "as", Value: "l"},
			{Key: "cond", Value: match},
		}}}}},
		0,
	}}}

	incremented := bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: cart},
		{Key: "as", Value: "l"},
		{Key: "in", Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: match},
			{Key: "then", Value: bson.D{{Key: "$mergeObjects", Value: bson.A{
				"$$l",
				bson.D{{Key: "quantity", Value: bson.D{{Key: "$add", Value: bson.A{"$$l.quantity", 1}}}}},
			}}}},
			{Key: "else", Value: "$$l"},
		}}}},
	}}}

	appended := bson.D{{Key: "$concatArrays", Value: bson.A{
		cart,
		bson.A{bson.D{
			{Key: "product_id", Value: productID},
			{Key: "variant_id", Value: variantID},
			{Key: "quantity", Value: 1},
			{Key: "added_at", Value: now},
		}},
	}}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "cart", Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: hasLine},
			{Key: "then", Value: incremented},
			{Key: "else", Value: appended},
		}}}}}}},
	}
}

func removeLineUpdate(productID, variantID string) bson.D {
	return bson.D{{Key: "$pull", Value: bson.D{{Key: "cart", Value: bson.D{
		{Key: "product_id", Value: productID},
		{Key: "variant_id", Value: variantID},
	}}}}}
}
