package dao_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"payment-ipn-api/internal/dao"
	ordermodel "payment-ipn-api/internal/model/order"
	"payment-ipn-api/internal/testutil"
)

func TestSettlePending_Completed(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	order, payment := testutil.SeedPendingPayment(t, db, "T1", 100)
	d := dao.NewPaymentDao(db)

	raw, _ := json.Marshal(map[string]string{"vnp_TxnRef": "T1", "vnp_ResponseCode": "00"})
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	settled, err := d.SettlePending(context.Background(), "T1", ordermodel.PaymentStatusCompleted, raw, at)
	require.NoError(t, err)
	require.NotNil(t, settled)
	require.Equal(t, payment.ID, settled.PaymentID)
	require.Equal(t, order.ID, settled.OrderID)

	got, err := d.GetByTransactionID(context.Background(), "T1")
	require.NoError(t, err)
	require.Equal(t, ordermodel.PaymentStatusCompleted, got.Status)
	require.NotNil(t, got.ProcessedAt)
	require.True(t, got.ProcessedAt.Equal(at))
	require.JSONEq(t, string(raw), string(got.GatewayResponse))

	o := testutil.ReloadOrder(t, db, order.ID)
	require.Equal(t, ordermodel.OrderPaymentPaid, o.PaymentStatus)
	require.Equal(t, ordermodel.OrderStatusConfirmed, o.Status)
}

func TestSettlePending_FailedLeavesOrderUntouched(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	order, _ := testutil.SeedPendingPayment(t, db, "T2", 100)
	d := dao.NewPaymentDao(db)

	settled, err := d.SettlePending(context.Background(), "T2", ordermodel.PaymentStatusFailed, []byte(`{}`), time.Now())
	require.NoError(t, err)
	require.NotNil(t, settled)

	got, err := d.GetByTransactionID(context.Background(), "T2")
	require.NoError(t, err)
	require.Equal(t, ordermodel.PaymentStatusFailed, got.Status)

	o := testutil.ReloadOrder(t, db, order.ID)
	require.Equal(t, "pending", o.PaymentStatus)
	require.Equal(t, "pending", o.Status)
}

func TestSettlePending_SecondDeliveryIsNoop(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.SeedPendingPayment(t, db, "T3", 100)
	d := dao.NewPaymentDao(db)
	ctx := context.Background()

	first, err := d.SettlePending(ctx, "T3", ordermodel.PaymentStatusCompleted, []byte(`{"n":1}`), time.Now())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := d.SettlePending(ctx, "T3", ordermodel.PaymentStatusFailed, []byte(`{"n":2}`), time.Now())
	require.NoError(t, err)
	require.Nil(t, second)

	got, err := d.GetByTransactionID(ctx, "T3")
	require.NoError(t, err)
	require.Equal(t, ordermodel.PaymentStatusCompleted, got.Status)
	require.JSONEq(t, `{"n":1}`, string(got.GatewayResponse))
}

func TestSettlePending_UnknownReference(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	d := dao.NewPaymentDao(db)

	settled, err := d.SettlePending(context.Background(), "NOPE", ordermodel.PaymentStatusCompleted, []byte(`{}`), time.Now())
	require.NoError(t, err)
	require.Nil(t, settled)
}

func TestSettlePending_StoreUnavailable(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = dao.NewPaymentDao(db).SettlePending(context.Background(), "T4", ordermodel.PaymentStatusCompleted, []byte(`{}`), time.Now())
	require.Error(t, err)
}

func TestSettlePending_NilDB(t *testing.T) {
	_, err := (&dao.PaymentDao{}).SettlePending(context.Background(), "T5", ordermodel.PaymentStatusCompleted, nil, time.Now())
	require.Error(t, err)
}
