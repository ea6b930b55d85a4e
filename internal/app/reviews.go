package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel_directory/internal/domain"
)

// ReviewService manages reviews. A user reviews a hotel at most once; only
// the author or an admin may change a review.
type ReviewService struct {
	reviews domain.ReviewRepository
	hotels  *HotelService
}

func NewReviewService(reviews domain.ReviewRepository, hotels *HotelService) *ReviewService {
	return &ReviewService{reviews: reviews, hotels: hotels}
}

func (s *ReviewService) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	if _, err := s.hotels.hotels.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.reviews.ListReviewsByHotel(ctx, hotelID)
}

// Get returns the review with its hotel's name and description.
func (s *ReviewService) Get(ctx context.Context, id int64) (domain.ReviewView, error) {
	return s.reviews.GetReviewView(ctx, id)
}

func (s *ReviewService) Add(ctx context.Context, actor domain.User, hotelID int64, in ReviewInput) (domain.Review, error) {
	if err := check(in); err != nil {
		return domain.Review{}, err
	}
	if _, err := s.hotels.hotels.GetHotel(ctx, hotelID); err != nil {
		return domain.Review{}, err
	}
	r := domain.Review{
		Title:   strings.TrimSpace(in.Title),
		Text:    in.Text,
		Rating:  in.Rating,
		HotelID: hotelID,
		UserID:  actor.ID,
	}
	if err := s.reviews.CreateReview(ctx, &r); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.Review{}, fmt.Errorf("%w: user %d has already reviewed hotel %d", domain.ErrDuplicate, actor.ID, hotelID)
		}
		return domain.Review{}, err
	}
	s.hotels.invalidate(ctx, hotelID)
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, actor domain.User, id int64, p ReviewPatch) (domain.Review, error) {
	if err := check(p); err != nil {
		return domain.Review{}, err
	}
	r, err := s.authorize(ctx, actor, id)
	if err != nil {
		return domain.Review{}, err
	}
	applyReviewPatch(&r, p)
	if err := s.reviews.UpdateReview(ctx, r); err != nil {
		return domain.Review{}, err
	}
	s.hotels.invalidate(ctx, r.HotelID)
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor domain.User, id int64) error {
	r, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.reviews.DeleteReview(ctx, id); err != nil {
		return err
	}
	s.hotels.invalidate(ctx, r.HotelID)
	return nil
}

func (s *ReviewService) authorize(ctx context.Context, actor domain.User, id int64) (domain.Review, error) {
	r, err := s.reviews.GetReview(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	if !canModify(actor, r.UserID) {
		return domain.Review{}, notOwner(actor, "review", id)
	}
	return r, nil
}
