package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fleetrent/internal/changes"
	"fleetrent/internal/common"

	"github.com/labstack/echo/v4"
)

// ChangesHandlers streams the tenant change feed over server-sent
// events. The HTTP connection is the subscription's lifetime: hanging
// up releases it.
type ChangesHandlers struct {
	broker changes.Broker
}

func NewChangesHandlers(broker changes.Broker) *ChangesHandlers {
	return &ChangesHandlers{broker: broker}
}

// Stream writes one `data:` frame per change event until the client
// disconnects. An optional ?entity= query narrows the feed to one
// entity type. Frames are written as events arrive; backpressure is
// left to the consumer.
func (h *ChangesHandlers) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	sub, err := h.broker.Subscribe(ctx, sess.TenantID, c.QueryParam("entity"))
	if err != nil {
		return common.HTTPError(err)
	}
	defer sub.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
