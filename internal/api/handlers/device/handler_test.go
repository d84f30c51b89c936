package device

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	mocks "github.com/plannerd/reminderd/internal/mocks/api/handlers/device"
	"github.com/plannerd/reminderd/internal/model"
	devicesvc "github.com/plannerd/reminderd/internal/service/device"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MockdeviceService) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockdeviceService(ctrl)
	handler := NewHandler(mockService, validator.New())
	return handler, mockService
}

func TestHandler_Register_Success(t *testing.T) {
	handler, mockService := setupHandler(t)
	owner := uuid.New()
	id := uuid.New()

	bodyBytes, _ := json.Marshal(RegisterRequest{Channel: model.ChannelPush, Address: "https://push.example.com/dev-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/devices", bytes.NewReader(bodyBytes))
	req.Header.Set("X-Owner-ID", owner.String())
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockService.EXPECT().
		Register(gomock.Any(), model.Device{
			OwnerID: owner,
			Channel: model.ChannelPush,
			Address: "https://push.example.com/dev-1",
		}).
		Return(id, nil)

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
	assert.Contains(t, w.Body.String(), id.String())
}

func TestHandler_Register_UnknownChannel(t *testing.T) {
	handler, mockService := setupHandler(t)
	owner := uuid.New()

	bodyBytes, _ := json.Marshal(RegisterRequest{Channel: "pager", Address: "555-0100"})
	req := httptest.NewRequest(http.MethodPost, "/api/devices", bytes.NewReader(bodyBytes))
	req.Header.Set("X-Owner-ID", owner.String())
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockService.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(uuid.Nil, devicesvc.ErrUnknownChannel)

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_Register_MissingOwner(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/devices", bytes.NewReader(nil))
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Register(c)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestHandler_List_Success(t *testing.T) {
	handler, mockService := setupHandler(t)
	owner := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/devices", nil)
	req.Header.Set("X-Owner-ID", owner.String())
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockService.EXPECT().
		List(gomock.Any(), owner).
		Return([]model.Device{{OwnerID: owner, Channel: model.ChannelEmail, Address: "a@b.c"}}, nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Contains(t, w.Body.String(), "a@b.c")
}
