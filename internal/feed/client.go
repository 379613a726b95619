package feed

import (
	"context"
	"time"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/avolkov/scribe/internal/common/constants"
	"github.com/avolkov/scribe/internal/common/logger"
)

// Client is one websocket subscriber. The feed is push-only: the read pump
// exists to surface close frames and enforce the ping/pong liveness check.
type Client struct {
	hub      *Hub
	conn     *gorillaWS.Conn
	userID   string
	username string
	send     chan []byte
	ctx      context.Context
	log      *logger.Logger
}

func NewClient(ctx context.Context, hub *Hub, conn *gorillaWS.Conn, userID, username string, log *logger.Logger) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		userID:   userID,
		username: username,
		send:     make(chan []byte, constants.FeedSendBufferSize),
		ctx:      ctx,
		log:      log,
	}
}

func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(constants.FeedPongWait))
	c.conn.SetReadLimit(constants.FeedMaxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(constants.FeedPongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if gorillaWS.IsUnexpectedCloseError(err, gorillaWS.CloseGoingAway, gorillaWS.CloseAbnormalClosure) {
				c.log.Warnf("feed read error user_id=%s username=%s: %v", c.userID, c.username, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(constants.FeedPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(constants.FeedWriteWait))
			if !ok {
				c.conn.WriteMessage(gorillaWS.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(gorillaWS.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(constants.FeedWriteWait))
			if err := c.conn.WriteMessage(gorillaWS.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
