package service

import (
	"context"
	"testing"

	"vitrine/internal/adapter"
	"vitrine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-field stubs shared by the service tests in this package.

type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	getByLoginFn func(ctx context.Context, login string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, user *models.User) error
	listFn       func(ctx context.Context) ([]models.User, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.User, error) { return nil, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByLoginFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		listFn:       func(context.Context) ([]models.User, error) { return nil, nil },
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	return s.getByLoginFn(ctx, login)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}

type feedRepoStub struct {
	createFn     func(ctx context.Context, post *models.Post) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Post, error)
	listFn       func(ctx context.Context) ([]models.Post, error)
	deleteFn     func(ctx context.Context, id uint) error
	addCommentFn func(ctx context.Context, comment *models.Comment) error
}

func noopFeedRepo() *feedRepoStub {
	return &feedRepoStub{
		createFn:     func(context.Context, *models.Post) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:       func(context.Context) ([]models.Post, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		addCommentFn: func(context.Context, *models.Comment) error { return nil },
	}
}

func (s *feedRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *feedRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *feedRepoStub) List(ctx context.Context) ([]models.Post, error) { return s.listFn(ctx) }
func (s *feedRepoStub) Delete(ctx context.Context, id uint) error       { return s.deleteFn(ctx, id) }
func (s *feedRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}

type chatRepoStub struct {
	createMessageFn func(ctx context.Context, msg *models.ChatMessage) error
	historyFn       func(ctx context.Context, userID string) ([]models.ChatMessage, error)
	summariesFn     func(ctx context.Context) ([]models.ChatSummary, error)
}

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		createMessageFn: func(context.Context, *models.ChatMessage) error { return nil },
		historyFn:       func(context.Context, string) ([]models.ChatMessage, error) { return nil, nil },
		summariesFn:     func(context.Context) ([]models.ChatSummary, error) { return nil, nil },
	}
}

func (s *chatRepoStub) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	return s.createMessageFn(ctx, msg)
}
func (s *chatRepoStub) History(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	return s.historyFn(ctx, userID)
}
func (s *chatRepoStub) Summaries(ctx context.Context) ([]models.ChatSummary, error) {
	return s.summariesFn(ctx)
}

type settingsRepoStub struct {
	getFn   func(ctx context.Context) (*models.Settings, error)
	patchFn func(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error)
}

func noopSettingsRepo() *settingsRepoStub {
	return &settingsRepoStub{
		getFn: func(context.Context) (*models.Settings, error) {
			return &models.Settings{ID: models.SettingsID}, nil
		},
		patchFn: func(context.Context, models.SettingsPatch) (*models.Settings, error) {
			return &models.Settings{ID: models.SettingsID}, nil
		},
	}
}

func (s *settingsRepoStub) Get(ctx context.Context) (*models.Settings, error) { return s.getFn(ctx) }
func (s *settingsRepoStub) Patch(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	return s.patchFn(ctx, patch)
}

type completionStub struct {
	completeFn func(ctx context.Context, apiKey, persona, transcript string) (string, error)
}

func (s *completionStub) Complete(ctx context.Context, apiKey, persona, transcript string) (string, error) {
	return s.completeFn(ctx, apiKey, persona, transcript)
}

type paymentStub struct {
	createChargeFn func(ctx context.Context, apiKey string, in adapter.ChargeInput) (*adapter.Charge, error)
}

func (s *paymentStub) CreateCharge(ctx context.Context, apiKey string, in adapter.ChargeInput) (*adapter.Charge, error) {
	return s.createChargeFn(ctx, apiKey, in)
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertErrorCode(t, err, "VALIDATION_ERROR")
}
