package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rei-kenpai/backend/internal/config"
	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/payment"
)

var testPaymentConfig = config.PaymentConfig{
	AppBaseURL: "https://rei.example.com",
}

func TestCreateCheckout(t *testing.T) {
	ctx := context.Background()
	projectID, _ := uuid.NewV7()

	t.Run("opens a session carrying donor metadata", func(t *testing.T) {
		records := new(mockKenpaiRecords)
		projects := new(mockProjects)
		gateway := new(mockGateway)
		dedup := new(mockWebhookDedup)
		s := newKenpaiService(records, projects, gateway, dedup, testPaymentConfig)

		projects.On("GetOneByID", mock.Anything, projectID).Return(&domain.Project{ID: projectID, Slug: "tanaka-ichiro"}, nil)

		var input payment.CheckoutSessionInput
		gateway.On("CreateCheckoutSession", mock.AnythingOfType("payment.CheckoutSessionInput")).
			Run(func(args mock.Arguments) {
				input = args.Get(0).(payment.CheckoutSessionInput)
			}).Return(&payment.CheckoutSession{ID: "cs_1", URL: "https://pay.example.com/cs_1"}, nil)

		result, err := s.CreateCheckout(ctx, CheckoutInput{
			Amount:    5000,
			DonorName: "佐藤花子",
			ProjectID: projectID,
			Slug:      "tanaka-ichiro",
			Message:   "ご冥福をお祈りします",
		})
		require.NoError(t, err)

		assert.Equal(t, "cs_1", result.SessionID)
		assert.Equal(t, "https://pay.example.com/cs_1", result.URL)
		assert.Equal(t, int64(5000), input.AmountJPY)
		assert.Equal(t, "献杯", input.ProductName)
		assert.Equal(t, "佐藤花子", input.Metadata["donor_name"])
		assert.Equal(t, projectID.String(), input.Metadata["project_id"])
		assert.Contains(t, input.SuccessURL, "tanaka-ichiro")
	})

	t.Run("rejects an unknown project", func(t *testing.T) {
		records := new(mockKenpaiRecords)
		projects := new(mockProjects)
		gateway := new(mockGateway)
		dedup := new(mockWebhookDedup)
		s := newKenpaiService(records, projects, gateway, dedup, testPaymentConfig)

		projects.On("GetOneByID", mock.Anything, projectID).Return(nil, domain.ErrNotFound)

		_, err := s.CreateCheckout(ctx, CheckoutInput{Amount: 5000, DonorName: "佐藤花子", ProjectID: projectID})
		assert.ErrorIs(t, err, ErrProjectNotFound)
		gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything)
	})
}

func completedEvent(eventID string, projectID uuid.UUID) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_1",
				"payment_status": "paid",
				"amount_total": 5000,
				"metadata": {
					"donor_name": "佐藤花子",
					"project_id": %q,
					"message": "ご冥福をお祈りします"
				}
			}
		}
	}`, eventID, projectID))
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()
	projectID, _ := uuid.NewV7()

	t.Run("records a completed checkout once", func(t *testing.T) {
		records := new(mockKenpaiRecords)
		projects := new(mockProjects)
		gateway := new(mockGateway)
		dedup := new(mockWebhookDedup)
		s := newKenpaiService(records, projects, gateway, dedup, testPaymentConfig)

		dedup.On("FirstSeen", mock.Anything, "evt_1", webhookDedupTTL).Return(true, nil).Once()
		dedup.On("FirstSeen", mock.Anything, "evt_1", webhookDedupTTL).Return(false, nil)

		var recorded *domain.Kenpai
		records.On("Create", mock.Anything, mock.AnythingOfType("*domain.Kenpai")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(*domain.Kenpai)
			}).Return(nil)

		payload := completedEvent("evt_1", projectID)
		require.NoError(t, s.HandleWebhook(ctx, payload))
		require.NoError(t, s.HandleWebhook(ctx, payload))

		records.AssertNumberOfCalls(t, "Create", 1)
		require.NotNil(t, recorded)
		assert.Equal(t, projectID, recorded.ProjectID)
		assert.Equal(t, "佐藤花子", recorded.DonorName)
		assert.Equal(t, int64(5000), recorded.Amount)
		assert.True(t, recorded.Message.Valid)
	})

	t.Run("a failed insert does not burn the event id", func(t *testing.T) {
		records := new(mockKenpaiRecords)
		projects := new(mockProjects)
		gateway := new(mockGateway)
		dedup := new(mockWebhookDedup)
		s := newKenpaiService(records, projects, gateway, dedup, testPaymentConfig)

		dedup.On("FirstSeen", mock.Anything, "evt_retry", webhookDedupTTL).Return(true, nil)
		dedup.On("Forget", mock.Anything, "evt_retry").Return(nil)
		records.On("Create", mock.Anything, mock.Anything).Return(errors.New("deadlock")).Once()
		records.On("Create", mock.Anything, mock.Anything).Return(nil)

		payload := completedEvent("evt_retry", projectID)
		require.Error(t, s.HandleWebhook(ctx, payload))
		require.NoError(t, s.HandleWebhook(ctx, payload))

		// The redelivery must reach the ledger, not be dropped as a duplicate.
		records.AssertNumberOfCalls(t, "Create", 2)
		dedup.AssertNumberOfCalls(t, "Forget", 1)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		records := new(mockKenpaiRecords)
		projects := new(mockProjects)
		gateway := new(mockGateway)
		dedup := new(mockWebhookDedup)
		s := newKenpaiService(records, projects, gateway, dedup, testPaymentConfig)

		require.NoError(t, s.HandleWebhook(ctx, []byte(`{"id":"evt_2","type":"payment_intent.created"}`)))
		dedup.AssertNotCalled(t, "FirstSeen", mock.Anything, mock.Anything, mock.Anything)
		records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ignores unpaid sessions", func(t *testing.T) {
		records := new(mockKenpaiRecords)
		projects := new(mockProjects)
		gateway := new(mockGateway)
		dedup := new(mockWebhookDedup)
		s := newKenpaiService(records, projects, gateway, dedup, testPaymentConfig)

		payload := []byte(`{
			"id": "evt_3",
			"type": "checkout.session.completed",
			"data": {"object": {"id": "cs_3", "payment_status": "unpaid"}}
		}`)
		require.NoError(t, s.HandleWebhook(ctx, payload))
		records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unparseable payloads", func(t *testing.T) {
		records := new(mockKenpaiRecords)
		projects := new(mockProjects)
		gateway := new(mockGateway)
		dedup := new(mockWebhookDedup)
		s := newKenpaiService(records, projects, gateway, dedup, testPaymentConfig)

		assert.Error(t, s.HandleWebhook(ctx, []byte(`not json`)))
	})
}
