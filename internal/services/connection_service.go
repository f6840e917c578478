package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"hospohub/internal/config"
	"hospohub/internal/kafka"
	"hospohub/internal/models"
	"hospohub/internal/storage"
)

var (
	ErrConnectionExists   = errors.New("a connection request already exists between these users")
	ErrConnectionNotFound = errors.New("connection not found")
	ErrRequesterNotFound  = errors.New("requester profile not found")
	ErrNotAuthorized      = errors.New("not authorized to perform this action")
)

// ValidationErrors carries field-level validation messages keyed by form field
// name. It is returned before any store access is attempted.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConnectionEvent is published to Kafka after a connection state change
// commits. Publishing is best effort and never part of the transaction.
type ConnectionEvent struct {
	Action       string    `json:"action"` // "initiated", "accepted", "declined"
	UserID       string    `json:"userId"`
	TargetUserID string    `json:"targetUserId"`
	Timestamp    time.Time `json:"timestamp"`
}

// ConnectionService orchestrates the connection request lifecycle between two
// users. Every operation takes the ordered pair as seen by the acting user;
// the caller boundary has already verified the actor is one side of it.
type ConnectionService interface {
	// Initiate creates a PENDING request from userID to targetUserID and, in
	// the same transaction, a CONNECTION_REQUEST notification for the target
	// snapshotting the requester's public profile.
	Initiate(ctx context.Context, userID, targetUserID string) (*models.Connection, error)
	// Cancel removes the request userID previously sent to targetUserID.
	Cancel(ctx context.Context, userID, targetUserID string) error
	// Accept marks the request originally sent by targetUserID to userID as
	// accepted. The acting user is userID.
	Accept(ctx context.Context, userID, targetUserID string) error
	// Decline marks the request originally sent by targetUserID to userID as
	// declined. The row is kept, not deleted.
	Decline(ctx context.Context, userID, targetUserID string) error
	// Overview returns the user's sent and received connection lists.
	Overview(ctx context.Context, userID string) (sent, received []models.Connection, err error)
}

// txRepositories bundles the repositories bound to one transaction, so the
// work inside it commits or rolls back as a unit.
type txRepositories struct {
	connections   storage.ConnectionRepository
	users         storage.UserRepository
	notifications storage.NotificationRepository
}

type connectionService struct {
	db          *gorm.DB // for transaction support
	connRepo    storage.ConnectionRepository
	userRepo    storage.UserRepository
	producer    kafka.MessageProducer
	kafkaConfig config.KafkaConfig
	transact    func(ctx context.Context, fn func(r txRepositories) error) error
}

// NewConnectionService creates a new ConnectionService instance. The producer
// may be nil, in which case no events are published.
func NewConnectionService(
	db *gorm.DB,
	connRepo storage.ConnectionRepository,
	userRepo storage.UserRepository,
	producer kafka.MessageProducer,
	cfg config.KafkaConfig,
) ConnectionService {
	s := &connectionService{
		db:          db,
		connRepo:    connRepo,
		userRepo:    userRepo,
		producer:    producer,
		kafkaConfig: cfg,
	}
	s.transact = s.gormTransact
	return s
}

// gormTransact runs fn inside a database transaction with repositories bound
// to it.
func (s *connectionService) gormTransact(ctx context.Context, fn func(r txRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepositories{
			connections:   storage.NewGormConnectionRepository(tx),
			users:         storage.NewGormUserRepository(tx),
			notifications: storage.NewGormNotificationRepository(tx),
		})
	})
}

// validateConnectionPair checks both identifiers before any store access.
func validateConnectionPair(userID, targetUserID string) ValidationErrors {
	errs := ValidationErrors{}
	if userID == "" {
		errs["userId"] = "Invalid user ID format."
	}
	if targetUserID == "" {
		errs["targetUserId"] = "Invalid target user ID format."
	}
	if len(errs) > 0 {
		return errs
	}
	if userID == targetUserID {
		errs["targetUserId"] = "You cannot connect with yourself."
		return errs
	}
	return nil
}

// Initiate creates the connection row and the target's notification as one
// all-or-nothing unit. Concurrent duplicate initiates are resolved by the
// composite primary key on connections: exactly one insert wins and the loser
// gets ErrConnectionExists.
func (s *connectionService) Initiate(ctx context.Context, userID, targetUserID string) (*models.Connection, error) {
	if errs := validateConnectionPair(userID, targetUserID); errs != nil {
		return nil, errs
	}

	connection := &models.Connection{
		UserID:       userID,
		TargetUserID: targetUserID,
		Status:       models.ConnectionStatusPending,
	}

	txErr := s.transact(ctx, func(r txRepositories) error {
		if err := r.connections.Create(ctx, connection); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConnectionExists
			}
			return fmt.Errorf("failed to create connection: %w", err)
		}

		// Snapshot the requester's public profile into the notification so the
		// inbox renders without a join. A missing requester rolls the insert back.
		requester, err := r.users.GetPublicProfileByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequesterNotFound
			}
			return fmt.Errorf("failed to load requester profile: %w", err)
		}

		metadata, err := models.NewConnectionRequestMetadata(requester).Encode()
		if err != nil {
			return fmt.Errorf("failed to encode notification metadata: %w", err)
		}

		notification := &models.Notification{
			UserID:   targetUserID,
			Type:     models.NotificationTypeConnectionRequest,
			Metadata: metadata,
		}
		if err := r.notifications.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.publishEvent(ctx, "initiated", userID, targetUserID)
	return connection, nil
}

// Cancel deletes the exact (userID, targetUserID) row. A second cancel of the
// same pair fails with ErrConnectionNotFound; that is the contract, not a bug.
func (s *connectionService) Cancel(ctx context.Context, userID, targetUserID string) error {
	if errs := validateConnectionPair(userID, targetUserID); errs != nil {
		return errs
	}

	rows, err := s.connRepo.Delete(ctx, userID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	if rows == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

// Accept resolves the reversed pair: the PENDING row was created by
// targetUserID pointing at userID, so that original row is the one mutated.
func (s *connectionService) Accept(ctx context.Context, userID, targetUserID string) error {
	return s.resolve(ctx, userID, targetUserID, models.ConnectionStatusAccepted, "accepted")
}

// Decline uses the same reversed-pair key resolution as Accept.
func (s *connectionService) Decline(ctx context.Context, userID, targetUserID string) error {
	return s.resolve(ctx, userID, targetUserID, models.ConnectionStatusDeclined, "declined")
}

func (s *connectionService) resolve(ctx context.Context, userID, targetUserID string, status models.ConnectionStatus, action string) error {
	if errs := validateConnectionPair(userID, targetUserID); errs != nil {
		return errs
	}

	rows, err := s.connRepo.UpdateStatus(ctx, targetUserID, userID, status)
	if err != nil {
		return fmt.Errorf("failed to update connection status: %w", err)
	}
	if rows == 0 {
		return ErrConnectionNotFound
	}

	s.publishEvent(ctx, action, userID, targetUserID)
	return nil
}

// Overview returns both directions of the user's connection edges for the
// read-side status projection.
func (s *connectionService) Overview(ctx context.Context, userID string) ([]models.Connection, []models.Connection, error) {
	sent, err := s.connRepo.ListSent(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sent connections: %w", err)
	}
	received, err := s.connRepo.ListReceived(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list received connections: %w", err)
	}
	return sent, received, nil
}

// publishEvent emits a post-commit lifecycle event. Failures are logged and
// swallowed; the committed state change is the source of truth.
func (s *connectionService) publishEvent(ctx context.Context, action, userID, targetUserID string) {
	if s.producer == nil {
		return
	}

	event := ConnectionEvent{
		Action:       action,
		UserID:       userID,
		TargetUserID: targetUserID,
		Timestamp:    time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshalling connection event (%s %s -> %s): %v", action, userID, targetUserID, err)
		return
	}

	key := []byte(userID + "-" + targetUserID)
	if err := s.producer.SendMessage(ctx, s.kafkaConfig.ConnectionEventsTopic, key, payload); err != nil {
		log.Printf("Error publishing connection event to topic %s: %v", s.kafkaConfig.ConnectionEventsTopic, err)
	}
}
