//go:build unit

package messaging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-booking/internal/infra/messaging"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/memstore"
	messagingmock "court-booking/tests/mock/messaging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRelay_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, time.June, 1, 12, 0, 0, 0, time.UTC)
	cfg := config.NewTestConfig().Messaging
	dedupe := "reservation_confirmed:cs_1"

	confirmed := &shared.OutboxJob{ID: uuid.New(), Kind: shared.JobReservationConfirmed, Topic: "reservation.reservation_confirmed", DedupeKey: &dedupe, Payload: []byte(`{}`)}
	created := &shared.OutboxJob{ID: uuid.New(), Kind: shared.JobReservationCreated, Topic: "reservation.reservation_created", Payload: []byte(`{}`), Attempts: 1}
	lastTry := &shared.OutboxJob{ID: uuid.New(), Kind: shared.JobReservationCancelled, Topic: "reservation.reservation_cancelled", Payload: []byte(`{}`), Attempts: cfg.OutboxMaxAttempts - 1}

	testCases := []struct {
		name      string
		setupMock func(store *messagingmock.MockOutboxStore, pub *messagingmock.MockPublisher)
		wantSent  int
		wantErr   bool
	}{
		{
			name: "success: dedupe key is the message id",
			setupMock: func(store *messagingmock.MockOutboxStore, pub *messagingmock.MockPublisher) {
				store.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, cfg.OutboxBatchSize).
					Return([]*shared.OutboxJob{confirmed, created}, nil)
				pub.EXPECT().Publish(gomock.Any(), confirmed.Topic, dedupe, confirmed.Payload).Return(nil)
				pub.EXPECT().Publish(gomock.Any(), created.Topic, created.ID.String(), created.Payload).Return(nil)
				store.EXPECT().MarkSent(gomock.Any(), gomock.Any(), confirmed.ID, int32(1), now).Return(nil)
				store.EXPECT().MarkSent(gomock.Any(), gomock.Any(), created.ID, int32(2), now).Return(nil)
			},
			wantSent: 2,
		},
		{
			name: "publish failure is retried with backoff",
			setupMock: func(store *messagingmock.MockOutboxStore, pub *messagingmock.MockPublisher) {
				store.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, cfg.OutboxBatchSize).
					Return([]*shared.OutboxJob{created}, nil)
				pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("channel closed"))
				store.EXPECT().MarkRetry(gomock.Any(), gomock.Any(), created.ID, int32(2), "channel closed",
					now.Add(2*cfg.OutboxPollInterval), false).Return(nil)
			},
			wantSent: 0,
		},
		{
			name: "final attempt fails the job for good",
			setupMock: func(store *messagingmock.MockOutboxStore, pub *messagingmock.MockPublisher) {
				store.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]*shared.OutboxJob{lastTry}, nil)
				pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("channel closed"))
				store.EXPECT().MarkRetry(gomock.Any(), gomock.Any(), lastTry.ID, cfg.OutboxMaxAttempts, gomock.Any(), gomock.Any(), true).Return(nil)
			},
			wantSent: 0,
		},
		{
			name: "error: claim fails",
			setupMock: func(store *messagingmock.MockOutboxStore, _ *messagingmock.MockPublisher) {
				store.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := messagingmock.NewMockOutboxStore(ctrl)
			pub := messagingmock.NewMockPublisher(ctrl)
			tc.setupMock(store, pub)

			relay := messaging.NewRelay(memstore.New(), store, pub, clock.NewMockClock(now), cfg)
			sent, err := relay.RunOnce(ctx)

			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSent, sent)
		})
	}
}
