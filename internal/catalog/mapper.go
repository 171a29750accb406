package catalog

import (
	"time"

	"myshop-be/internal/product"
	"myshop-be/internal/review"
	"myshop-be/internal/utils"
)

type ProductResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"img_url"`
	Quantity    int    `json:"quantity"`
}

type ListingResponse struct {
	ProductResponse
	AverageRating string           `json:"average_rating"`
	ReviewCount   int              `json:"review_count"`
	Reviews       []ReviewResponse `json:"reviews"`
	Purchased     bool             `json:"purchased"`
	Reviewed      bool             `json:"reviewed"`
}

type ReviewResponse struct {
	ID        uint    `json:"id"`
	Author    string  `json:"author"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	CreatedAt string  `json:"created_at"`
}

type PageResponse struct {
	Product       ProductResponse  `json:"product"`
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating string           `json:"average_rating"`
	HasReviewed   bool             `json:"has_reviewed"`
	CanReview     bool             `json:"can_review"`
}

func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Quantity:    p.Quantity,
	}
}

func ToListingResponses(listings []Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		out = append(out, ListingResponse{
			ProductResponse: ToProductResponse(&l.Product),
			AverageRating:   l.Rating.Average.StringFixed(2),
			ReviewCount:     l.Rating.Count,
			Reviews:         toReviewResponses(l.Preview),
			Purchased:       l.Purchased,
			Reviewed:        l.Reviewed,
		})
	}
	return out
}

// ToReviewResponse never exposes the author's full name.
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Author:    utils.AnonymizeName(r.AuthorName),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReviewResponses(reviews []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, ToReviewResponse(&reviews[i]))
	}
	return out
}

func ToPageResponse(p *ProductPage) PageResponse {
	return PageResponse{
		Product:       ToProductResponse(&p.Product),
		Reviews:       toReviewResponses(p.Reviews),
		AverageRating: p.Average.StringFixed(2),
		HasReviewed:   p.HasReviewed,
		CanReview:     p.CanReview,
	}
}
