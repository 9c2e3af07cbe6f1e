package mongo

import (
	"time"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionDocument は MongoDB 上での投稿（審査待ちおすすめ店）スキーマ。
type SubmissionDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	RestaurantName  string             `bson:"restaurantName"`
	Category        string             `bson:"category"`
	Location        string             `bson:"location"`
	PriceRange      string             `bson:"priceRange"`
	RecommendedMenu []string           `bson:"recommendedMenu"`
	Review          string             `bson:"review"`
	SubmitterName   string             `bson:"submitterName"`
	SubmitterEmail  string             `bson:"submitterEmail"`
	Status          string             `bson:"status"`
	Image           string             `bson:"image,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// RestaurantDocument は承認済みレストランのスキーマ。_id はアプリ側で採番した UUID 文字列。
type RestaurantDocument struct {
	ID                 string    `bson:"_id"`
	Name               string    `bson:"name"`
	Category           string    `bson:"category"`
	Location           string    `bson:"location"`
	PriceRange         string    `bson:"priceRange"`
	Description        string    `bson:"description"`
	RecommendedMenu    []string  `bson:"recommendedMenu"`
	Image              string    `bson:"image,omitempty"`
	SourceSubmissionID string    `bson:"sourceSubmissionId,omitempty"`
	CreatedAt          time.Time `bson:"createdAt"`
}

// mapSubmission は Mongo ドキュメントをドメインの Submission に変換する。
func mapSubmission(doc SubmissionDocument) domain.Submission {
	return domain.Submission{
		ID:              doc.ID.Hex(),
		RestaurantName:  doc.RestaurantName,
		Category:        doc.Category,
		Location:        doc.Location,
		PriceRange:      doc.PriceRange,
		RecommendedMenu: domain.NormaliseMenu(doc.RecommendedMenu),
		Review:          doc.Review,
		SubmitterName:   doc.SubmitterName,
		SubmitterEmail:  doc.SubmitterEmail,
		Status:          domain.Status(doc.Status),
		Image:           doc.Image,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

func buildSubmissionDocument(id primitive.ObjectID, s *domain.Submission) SubmissionDocument {
	return SubmissionDocument{
		ID:              id,
		RestaurantName:  s.RestaurantName,
		Category:        s.Category,
		Location:        s.Location,
		PriceRange:      s.PriceRange,
		RecommendedMenu: domain.NormaliseMenu(s.RecommendedMenu),
		Review:          s.Review,
		SubmitterName:   s.SubmitterName,
		SubmitterEmail:  s.SubmitterEmail,
		Status:          s.Status.String(),
		Image:           s.Image,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func mapRestaurant(doc RestaurantDocument) domain.Restaurant {
	return domain.Restaurant{
		ID:                 doc.ID,
		Name:               doc.Name,
		Category:           doc.Category,
		Location:           doc.Location,
		PriceRange:         doc.PriceRange,
		Description:        doc.Description,
		RecommendedMenu:    domain.NormaliseMenu(doc.RecommendedMenu),
		Image:              doc.Image,
		SourceSubmissionID: doc.SourceSubmissionID,
		CreatedAt:          doc.CreatedAt,
	}
}

func buildRestaurantDocument(r *domain.Restaurant) RestaurantDocument {
	return RestaurantDocument{
		ID:                 r.ID,
		Name:               r.Name,
		Category:           r.Category,
		Location:           r.Location,
		PriceRange:         r.PriceRange,
		Description:        r.Description,
		RecommendedMenu:    domain.NormaliseMenu(r.RecommendedMenu),
		Image:              r.Image,
		SourceSubmissionID: r.SourceSubmissionID,
		CreatedAt:          r.CreatedAt,
	}
}
