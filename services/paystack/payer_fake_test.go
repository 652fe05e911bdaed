package paystack

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
	"github.com/MarcGrol/shopreconciler/lib/mystore"
	"github.com/MarcGrol/shopreconciler/lib/mytime"
)

func TestFakePayer(t *testing.T) {
	c := context.TODO()

	setupFake := func(t *testing.T, ctrl *gomock.Controller) (*FakePayer, *mytime.MockNower) {
		store, _, err := mystore.NewInMemoryStore[Transaction](c)
		assert.NoError(t, err)
		nower := mytime.NewMockNower(ctrl)
		return NewFakePayer("http://localhost:8080", store, nower), nower
	}

	t.Run("Initialize", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, nower := setupFake(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		result, err := sut.Initialize(c, "a@b.c", 250000, "R 1", map[string]any{"userId": "user_1"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/checkout/mock-redirect?reference=R+1", result.CheckoutURL)
		assert.Equal(t, "MOCK-R 1", result.AccessCode)

		tx, err := sut.Verify(c, "R 1")
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, tx.Status)
		assert.Equal(t, int64(250000), tx.AmountMinorUnits)
		assert.Equal(t, "a@b.c", tx.CustomerEmail)
		assert.Equal(t, "user_1", tx.Metadata["userId"])
	})

	t.Run("Verify unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, _ := setupFake(t, ctrl)

		// when
		_, err := sut.Verify(c, "R404")

		// then
		assert.Error(t, err)
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
	})

	t.Run("Confirm", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, nower := setupFake(t, ctrl)
		paidAt := mytime.ExampleTime.Add(time.Minute)
		gomock.InOrder(
			nower.EXPECT().Now().Return(mytime.ExampleTime),
			nower.EXPECT().Now().Return(paidAt),
		)
		_, err := sut.Initialize(c, "a@b.c", 250000, "R1", nil)
		assert.NoError(t, err)

		// when
		tx, err := sut.Confirm(c, "R1")

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusSuccess, tx.Status)
		assert.Equal(t, paidAt, *tx.PaidAt)

		verified, err := sut.Verify(c, "R1")
		assert.NoError(t, err)
		assert.Equal(t, StatusSuccess, verified.Status)

		// confirming again keeps the original payment moment
		again, err := sut.Confirm(c, "R1")
		assert.NoError(t, err)
		assert.Equal(t, paidAt, *again.PaidAt)
	})

	t.Run("Confirm unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sut, _ := setupFake(t, ctrl)

		// when
		_, err := sut.Confirm(c, "R404")

		// then
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
	})

	t.Run("Stores are isolated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		first, nower := setupFake(t, ctrl)
		second, _ := setupFake(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		_, _ = first.Initialize(c, "a@b.c", 100, "R1", nil)

		// when
		_, err := second.Verify(c, "R1")

		// then
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
	})
}
