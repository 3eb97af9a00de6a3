package services

import (
	"errors"

	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
	"bizlens/internal/models/response_models"
	"bizlens/pkg/utils"
)

// translateNotFound maps a repository miss to the domain sentinel and
// anything else to ErrDatabaseError.
func translateNotFound(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return utils.ErrDatabaseError
}

func toBusinessSummary(business db_models.Business) response_models.BusinessSummary {
	summary := response_models.BusinessSummary{
		ID:          business.ID.String(),
		Name:        business.Name,
		Slug:        business.Slug,
		Address:     business.Address,
		RatingAvg:   business.RatingAvg,
		RatingCount: business.RatingCount,
		IsVerified:  business.IsVerified,
	}
	if business.Category != nil {
		summary.Category = business.Category.Name
	}
	if business.City != nil {
		summary.City = business.City.Name
	}
	for _, tag := range business.Tags {
		summary.Tags = append(summary.Tags, tag.Name)
	}
	return summary
}

func toBusinessDetail(business db_models.Business) response_models.BusinessDetail {
	detail := response_models.BusinessDetail{
		ID:          business.ID.String(),
		Name:        business.Name,
		Slug:        business.Slug,
		Description: business.Description,
		Address:     business.Address,
		Latitude:    business.Latitude,
		Longitude:   business.Longitude,
		Phone:       business.Phone,
		Website:     business.Website,
		RatingAvg:   business.RatingAvg,
		RatingCount: business.RatingCount,
		IsVerified:  business.IsVerified,
	}
	if business.Category != nil {
		detail.Category = business.Category.Name
	}
	if business.City != nil {
		detail.City = business.City.Name
	}
	for _, tag := range business.Tags {
		detail.Tags = append(detail.Tags, tag.Name)
	}
	for _, offering := range business.Offerings {
		detail.Offerings = append(detail.Offerings, toOfferingResponse(offering))
	}
	return detail
}

func toOfferingResponse(offering db_models.Offering) response_models.OfferingResponse {
	resp := response_models.OfferingResponse{
		ID:          offering.ID.String(),
		BusinessID:  offering.BusinessID.String(),
		Name:        offering.Name,
		Description: offering.Description,
		PriceCents:  offering.PriceCents,
		Currency:    offering.Currency,
		IsActive:    offering.IsActive,
	}
	for _, image := range offering.Images {
		if image.IsPrimary {
			resp.PrimaryURL = image.URL
		}
		resp.Images = append(resp.Images, response_models.OfferingImageResponse{
			ID:        image.ID.String(),
			URL:       image.URL,
			Source:    image.Source,
			License:   image.License,
			IsPrimary: image.IsPrimary,
			Width:     image.Width,
			Height:    image.Height,
		})
	}
	return resp
}

func toReviewResponse(review db_models.UserReview) response_models.ReviewResponse {
	resp := response_models.ReviewResponse{
		ID:          review.ID.String(),
		BusinessID:  review.BusinessID.String(),
		AuthorName:  review.Account.Name,
		AuthorLevel: review.Account.Level,
		Rating:      review.Rating,
		ReviewText:  review.ReviewText,
		ImageURLs:   review.ImageURLs,
		Views:       review.Views,
		CreatedAt:   review.CreatedAt,
	}
	if review.OfferingID != nil {
		resp.OfferingID = review.OfferingID.String()
	}
	if resp.AuthorLevel < 1 {
		resp.AuthorLevel = 1
	}
	return resp
}

func toArticleResponse(article db_models.Article) response_models.ArticleResponse {
	return response_models.ArticleResponse{
		ID:          article.ID.String(),
		Title:       article.Title,
		Excerpt:     article.Excerpt,
		URL:         article.URL,
		PublishedAt: article.PublishedAt,
	}
}

func toAccountResponse(account db_models.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:      account.ID.String(),
		Name:    account.Name,
		Email:   account.Email,
		Role:    account.Role,
		Level:   account.Level,
		Credits: account.Credits,
	}
}
