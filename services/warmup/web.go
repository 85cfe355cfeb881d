package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mediakasir/apotekpos/lib/mycontext"
	"github.com/mediakasir/apotekpos/lib/myhttp"
	"github.com/mediakasir/apotekpos/lib/mylog"
)

//go:generate mockgen -source=web.go -package warmup -destination topic_creator_mock.go TopicCreator
type TopicCreator interface {
	CreateTopic(c context.Context, topicName string) error
}

type webService struct {
	logger  mylog.Logger
	creator TopicCreator
	topics  []string
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(creator TopicCreator, topics ...string) *webService {
	return &webService{
		logger:  mylog.New("warmup"),
		creator: creator,
		topics:  topics,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

// warmupPage makes sure the event topics exist before the first sale is published.
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		for _, topic := range s.topics {
			err := s.creator.CreateTopic(c, topic)
			if err != nil {
				errorWriter.WriteError(c, w, 1, err)
				return
			}
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
