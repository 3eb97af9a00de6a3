package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bizlens/internal/models/db_models"
	"bizlens/internal/models/request_models"
	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

const (
	maxReviewImages      = 6
	fullReviewCredits    = 10
	partialReviewCredits = 5
)

// levelThresholds maps credit totals to reviewer levels 1..5.
var levelThresholds = []int{0, 100, 250, 500, 1000}

type ReviewServiceInterface interface {
	SubmitReview(req request_models.SubmitReviewRequest, accountID uuid.UUID, ctx context.Context) (string, error)
	ListApprovedByBusiness(businessID string, ctx context.Context) ([]response_models.ReviewResponse, error)
	RegisterView(reviewID uuid.UUID, ctx context.Context) error

	ModerationQueue(page, pageSize int, ctx context.Context) (response_models.ModerationQueue, error)
	ModerateReview(req request_models.ModerateReviewRequest, moderatorID uuid.UUID, ctx context.Context) (response_models.ModerationResult, error)
}

type ReviewService struct {
	reviewRepository   repositories.ReviewRepository
	accountRepository  repositories.AccountRepository
	businessRepository repositories.BusinessRepository
	ranker             *ReviewRanker
	mailService        MailServiceInterface
}

func NewReviewService(
	reviewRepository repositories.ReviewRepository,
	accountRepository repositories.AccountRepository,
	businessRepository repositories.BusinessRepository,
	ranker *ReviewRanker,
	mailService MailServiceInterface,
) ReviewServiceInterface {
	return &ReviewService{
		reviewRepository:   reviewRepository,
		accountRepository:  accountRepository,
		businessRepository: businessRepository,
		ranker:             ranker,
		mailService:        mailService,
	}
}

// SubmitReview creates a pending review. One review per account per
// business; while the earlier one is still pending a resubmission replaces
// its content instead of erroring.
func (r *ReviewService) SubmitReview(req request_models.SubmitReviewRequest, accountID uuid.UUID, ctx context.Context) (string, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return "", utils.ErrInvalidInput
	}
	if len(req.ImageURLs) > maxReviewImages {
		return "", utils.ErrInvalidInput
	}

	business, err := r.businessRepository.GetByID(ctx, req.BusinessID.String())
	if err != nil {
		log.Printf("Error fetching business %s: %v", req.BusinessID, err)
		return "", utils.ErrDatabaseError
	}
	if business == nil {
		return "", utils.ErrBusinessNotFound
	}

	existing, err := r.reviewRepository.FindByAccountAndBusiness(ctx, accountID, req.BusinessID)
	if err != nil {
		log.Printf("Error checking existing review: %v", err)
		return "", utils.ErrDatabaseError
	}

	if existing != nil {
		if existing.Status != db_models.ReviewStatusPending {
			return "", utils.ErrDuplicateReview
		}
		existing.Rating = req.Rating
		existing.ReviewText = strings.TrimSpace(req.ReviewText)
		existing.ImageURLs = pq.StringArray(req.ImageURLs)
		existing.OfferingID = req.OfferingID
		existing.Account = db_models.Account{}
		existing.Business = db_models.Business{}
		if err := r.reviewRepository.Update(ctx, existing); err != nil {
			log.Printf("Error replacing pending review %s: %v", existing.ID, err)
			return "", utils.ErrDatabaseError
		}
		return existing.ID.String(), nil
	}

	review := db_models.UserReview{
		AccountID:  accountID,
		BusinessID: req.BusinessID,
		OfferingID: req.OfferingID,
		Rating:     req.Rating,
		ReviewText: strings.TrimSpace(req.ReviewText),
		ImageURLs:  pq.StringArray(req.ImageURLs),
		Status:     db_models.ReviewStatusPending,
	}
	id, err := r.reviewRepository.Create(ctx, &review)
	if err != nil {
		log.Printf("Error creating review: %v", err)
		return "", utils.ErrDatabaseError
	}
	return id.String(), nil
}

// ListApprovedByBusiness returns approved reviews in priority order.
func (r *ReviewService) ListApprovedByBusiness(businessID string, ctx context.Context) ([]response_models.ReviewResponse, error) {
	reviews, err := r.reviewRepository.ListApprovedByBusiness(ctx, businessID)
	if err != nil {
		log.Printf("Error listing reviews for business %s: %v", businessID, err)
		return nil, utils.ErrDatabaseError
	}

	ranked := r.ranker.RankReviews(reviews)
	responses := make([]response_models.ReviewResponse, 0, len(ranked))
	for _, item := range ranked {
		responses = append(responses, toReviewResponse(item.Review))
	}
	return responses, nil
}

func (r *ReviewService) RegisterView(reviewID uuid.UUID, ctx context.Context) error {
	if err := r.reviewRepository.IncrementViews(ctx, reviewID); err != nil {
		log.Printf("Error incrementing views on %s: %v", reviewID, err)
		return translateNotFound(err, utils.ErrReviewNotFound)
	}
	return nil
}

func (r *ReviewService) ModerationQueue(page, pageSize int, ctx context.Context) (response_models.ModerationQueue, error) {
	reviews, total, err := r.reviewRepository.ListPending(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing pending reviews: %v", err)
		return response_models.ModerationQueue{}, utils.ErrDatabaseError
	}

	items := make([]response_models.ModerationQueueItem, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, response_models.ModerationQueueItem{
			ID:           review.ID.String(),
			BusinessID:   review.BusinessID.String(),
			BusinessName: review.Business.Name,
			AuthorName:   review.Account.Name,
			AuthorEmail:  review.Account.Email,
			Rating:       review.Rating,
			ReviewText:   review.ReviewText,
			ImageURLs:    review.ImageURLs,
			CreatedAt:    review.CreatedAt,
		})
	}
	return response_models.ModerationQueue{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ModerateReview applies an approve/reject decision. The status flip, rating
// aggregates, credit award and level change commit in one transaction; the
// notification mail is best effort afterwards.
func (r *ReviewService) ModerateReview(req request_models.ModerateReviewRequest, moderatorID uuid.UUID, ctx context.Context) (response_models.ModerationResult, error) {
	review, err := r.reviewRepository.GetByID(ctx, req.ReviewID.String())
	if err != nil {
		log.Printf("Error fetching review %s: %v", req.ReviewID, err)
		return response_models.ModerationResult{}, utils.ErrDatabaseError
	}
	if review == nil {
		return response_models.ModerationResult{}, utils.ErrReviewNotFound
	}
	if review.Status != db_models.ReviewStatusPending {
		return response_models.ModerationResult{}, utils.ErrInvalidStatusTransition
	}

	award := 0
	newLevel := 0
	if req.Approve {
		award = partialReviewCredits
		if IsFullReview(*review) {
			award = fullReviewCredits
		}
		// Read the balance fresh rather than trusting the preload; another
		// approval may have landed since the review row was loaded.
		account, err := r.accountRepository.GetByID(ctx, review.AccountID.String())
		if err != nil {
			log.Printf("Error fetching account %s: %v", review.AccountID, err)
			return response_models.ModerationResult{}, utils.ErrDatabaseError
		}
		if account == nil {
			return response_models.ModerationResult{}, utils.ErrAccountNotFound
		}
		newLevel = levelForCredits(account.Credits + award)
		if newLevel == account.Level {
			newLevel = 0
		}
	}

	err = r.reviewRepository.Moderate(ctx, repositories.ModerateParams{
		ReviewID:    req.ReviewID,
		Approve:     req.Approve,
		ModeratorID: moderatorID,
		Note:        req.Note,
		CreditAward: award,
		NewLevel:    newLevel,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyModerated) {
			return response_models.ModerationResult{}, utils.ErrInvalidStatusTransition
		}
		log.Printf("Error moderating review %s: %v", req.ReviewID, err)
		return response_models.ModerationResult{}, translateNotFound(err, utils.ErrReviewNotFound)
	}

	status := db_models.ReviewStatusRejected
	if req.Approve {
		status = db_models.ReviewStatusApproved
	}

	r.notifyReviewer(*review, req.Approve, req.Note)

	result := response_models.ModerationResult{
		ReviewID:    req.ReviewID.String(),
		Status:      string(status),
		CreditAward: award,
		NewLevel:    newLevel,
	}
	return result, nil
}

func (r *ReviewService) notifyReviewer(review db_models.UserReview, approved bool, note string) {
	if r.mailService == nil || review.Account.Email == "" {
		return
	}
	businessName := review.Business.Name
	if businessName == "" {
		businessName = "a business you reviewed"
	}
	if err := r.mailService.SendReviewModeratedMail(review.Account.Email, businessName, approved, note); err != nil {
		log.Printf("Error sending moderation mail to %s: %v", review.Account.Email, err)
	}
}

func levelForCredits(credits int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if credits >= threshold {
			level = i + 1
		}
	}
	return level
}
