package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"inkwell/internal/pkg"

	"go.uber.org/zap"
)

var ErrSelfSubscription = errors.New("cannot subscribe to yourself")

// SubscriptionService lets readers follow authors by username.
type SubscriptionService struct {
	subs   SubscriptionRepo
	users  UserRepo
	events *pkg.EventProducer
	log    *zap.Logger
}

func NewSubscriptionService(subs SubscriptionRepo, users UserRepo,
	events *pkg.EventProducer, log *zap.Logger) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users, events: events, log: log}
}

// Subscribe follows an author. Idempotent; following twice is not an error.
// pkg.ErrNotFound when the username is unknown.
func (s *SubscriptionService) Subscribe(followerID uint64, username string) error {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return err
	}
	if author.ID == followerID {
		return ErrSelfSubscription
	}
	changed, err := s.subs.Subscribe(followerID, author.ID)
	if err != nil {
		return err
	}
	if changed {
		s.emit("subscription.created", followerID, author.ID)
	}
	return nil
}

// Unsubscribe stops following an author. Idempotent.
func (s *SubscriptionService) Unsubscribe(followerID uint64, username string) error {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return err
	}
	changed, err := s.subs.Unsubscribe(followerID, author.ID)
	if err != nil {
		return err
	}
	if changed {
		s.emit("subscription.removed", followerID, author.ID)
	}
	return nil
}

func (s *SubscriptionService) IsSubscribed(followerID uint64, username string) (bool, error) {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return false, err
	}
	return s.subs.IsSubscribed(followerID, author.ID)
}

func (s *SubscriptionService) emit(eventType string, followerID, authorID uint64) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]any{
		"type":        eventType,
		"follower_id": followerID,
		"author_id":   authorID,
	})
	if err != nil {
		s.log.Warn("marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.events.Send(ctx, pkg.EventKey(authorID), body); err != nil {
		s.log.Warn("publish event", zap.String("type", eventType), zap.Error(err))
	}
}
