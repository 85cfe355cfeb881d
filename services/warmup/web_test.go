package warmup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWarmup(t *testing.T) {
	t.Run("Topics created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, creator := setup(ctrl)

		// given
		creator.EXPECT().CreateTopic(gomock.Any(), "pos").Return(nil)

		// when
		response := doWarmup(router)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "Successfully processed warmup request")
	})

	t.Run("Pubsub unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, creator := setup(ctrl)

		// given
		creator.EXPECT().CreateTopic(gomock.Any(), "pos").Return(errors.New("permission denied"))

		// when
		response := doWarmup(router)

		// then
		assert.Equal(t, http.StatusInternalServerError, response.Code)
	})
}

func doWarmup(router *mux.Router) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(http.MethodGet, "/_ah/warmup", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(ctrl *gomock.Controller) (*mux.Router, *MockTopicCreator) {
	creator := NewMockTopicCreator(ctrl)
	router := mux.NewRouter()
	NewService(creator, "pos").RegisterEndpoints(context.TODO(), router)
	return router, creator
}
