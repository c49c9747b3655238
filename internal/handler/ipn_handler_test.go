package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"payment-ipn-api/internal/dto"
)

type fakeProcessor struct {
	got   []dto.IpnEvent
	reply dto.IpnResult
}

func (f *fakeProcessor) HandleEvent(_ context.Context, evt dto.IpnEvent) dto.IpnResult {
	f.got = append(f.got, evt)
	return f.reply
}

func newRouter(svc ipnProcessor, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewIpnHandler(svc), guards...)
	return r
}

func TestCallback_PostForm(t *testing.T) {
	svc := &fakeProcessor{reply: dto.IpnResult{StatusCode: http.StatusOK, Body: `{"RspCode":"00","Message":"Success"}`}}
	r := newRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/ipn", strings.NewReader("vnp_TxnRef=T1&vnp_ResponseCode=00"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"RspCode":"00","Message":"Success"}`, w.Body.String())
	require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	require.Len(t, svc.got, 1)
	require.Equal(t, http.MethodPost, svc.got[0].HTTPMethod)
	require.Equal(t, "vnp_TxnRef=T1&vnp_ResponseCode=00", svc.got[0].Body)
	require.False(t, svc.got[0].IsBase64Encoded)
}

func TestCallback_GetQuery(t *testing.T) {
	svc := &fakeProcessor{reply: dto.IpnResult{StatusCode: http.StatusBadRequest, Body: `{"RspCode":"97","Message":"Invalid signature"}`}}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/payments/ipn?vnp_TxnRef=T1&vnp_TxnRef=T2&vnp_Amount=10000", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, svc.got, 1)
	require.Equal(t, map[string]string{"vnp_TxnRef": "T1", "vnp_Amount": "10000"}, svc.got[0].QueryStringParameters)
	require.Empty(t, svc.got[0].Body)
}

func TestEvent_Envelope(t *testing.T) {
	svc := &fakeProcessor{reply: dto.IpnResult{StatusCode: http.StatusOK, Body: `{"RspCode":"00","Message":"Success"}`}}
	r := newRouter(svc)

	envelope := `{"httpMethod":"POST","queryStringParameters":null,"body":"dnBfVHhuUmVmPVQx","isBase64Encoded":true}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/payments/ipn/event", strings.NewReader(envelope)))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.got, 1)
	require.Equal(t, "POST", svc.got[0].HTTPMethod)
	require.Equal(t, "dnBfVHhuUmVmPVQx", svc.got[0].Body)
	require.True(t, svc.got[0].IsBase64Encoded)
}

func TestEvent_BadEnvelope(t *testing.T) {
	svc := &fakeProcessor{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/payments/ipn/event", strings.NewReader("{not json")))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"No parameters provided"}`, w.Body.String())
	require.Empty(t, svc.got)
}

func TestRoutes_GuardsApplyToIpnOnly(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorBody{Error: "Forbidden"}) }
	svc := &fakeProcessor{}
	r := newRouter(svc, deny)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/payments/ipn", strings.NewReader("a=1")))
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Empty(t, svc.got)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
