package api

import (
	"net/http"
	"sync"

	"github.com/duddn2012/GameServer/internal/constants"
	"github.com/duddn2012/GameServer/internal/logging"
	"github.com/duddn2012/GameServer/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Play commands accepted on the websocket channel.
const (
	CommandGreeting  = "GREETING"
	CommandReady     = "READY"
	CommandStart     = "START"
	CommandTurnGame  = "TURN_GAME"
	CommandEndGame   = "END_GAME"
	CommandSurrender = "SURRENDER_GAME"
	CommandQuitGame  = "QUIT_GAME"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The Bearer token in the query string is the access control; the
	// browser origin is not.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// playClient is one websocket connection bound to a character inside a
// match room.
type playClient struct {
	id          string
	conn        *websocket.Conn
	characterID uint
	matchRoomID uint
	writeMu     sync.Mutex
}

func (c *playClient) writeJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// PlayHub tracks the websocket clients attached to each match room and
// broadcasts play results to both players.
type PlayHub struct {
	svc   *service.Service
	mu    sync.Mutex
	rooms map[uint]map[*playClient]bool
}

func NewPlayHub(svc *service.Service) *PlayHub {
	return &PlayHub{svc: svc, rooms: make(map[uint]map[*playClient]bool)}
}

func (h *PlayHub) join(c *playClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[c.matchRoomID] == nil {
		h.rooms[c.matchRoomID] = make(map[*playClient]bool)
	}
	h.rooms[c.matchRoomID][c] = true
}

func (h *PlayHub) leave(c *playClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[c.matchRoomID], c)
	if len(h.rooms[c.matchRoomID]) == 0 {
		delete(h.rooms, c.matchRoomID)
	}
}

// broadcast sends a command envelope to every client in the room.
func (h *PlayHub) broadcast(matchRoomID uint, command string, payload interface{}) {
	h.mu.Lock()
	clients := make([]*playClient, 0, len(h.rooms[matchRoomID]))
	for c := range h.rooms[matchRoomID] {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	msg := gin.H{constants.LogFieldCommand: command, "payload": payload}
	for _, c := range clients {
		if err := c.writeJSON(msg); err != nil {
			logging.Error("websocket broadcast failed", err, logging.Fields{
				constants.LogFieldMatchRoomID: matchRoomID,
				constants.LogFieldCharacterID: c.characterID,
			})
		}
	}
}

// playMessage is an inbound command frame.
type playMessage struct {
	Command       string `json:"command"`
	SkillID       uint   `json:"skill_id,omitempty"`
	SelfReady     bool   `json:"self_ready,omitempty"`
	OpponentReady bool   `json:"opponent_ready,omitempty"`
}

// ServePlay upgrades the connection and runs the command loop for one
// player. Authentication uses the access_token query parameter because
// browsers cannot set headers on websocket dials.
func (h *PlayHub) ServePlay(c *gin.Context) {
	token := c.Query(constants.QueryParamAccessToken)
	claims, err := parseAndValidateSession(token)
	if err != nil || claims.CharacterID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	matchRoomID := pathID(c, "matchRoomID")
	if matchRoomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, nil)
		return
	}

	client := &playClient{
		id:          uuid.NewString(),
		conn:        conn,
		characterID: claims.CharacterID,
		matchRoomID: matchRoomID,
	}
	h.join(client)
	defer func() {
		h.leave(client)
		conn.Close()
	}()

	h.broadcast(matchRoomID, CommandGreeting, h.svc.Greeting(client.characterID))

	for {
		var msg playMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		h.dispatch(client, msg)
	}
}

// dispatch runs one command against the orchestrator. Results are
// broadcast to the whole room; failures go back to the sender only.
func (h *PlayHub) dispatch(client *playClient, msg playMessage) {
	roomID := client.matchRoomID

	var (
		payload interface{}
		err     error
	)
	switch msg.Command {
	case CommandGreeting:
		payload = h.svc.Greeting(client.characterID)
	case CommandReady:
		payload, err = h.svc.Ready(client.characterID, roomID, msg.SelfReady, msg.OpponentReady)
	case CommandStart:
		payload, err = h.svc.Start(client.characterID, roomID)
	case CommandTurnGame:
		payload, err = h.svc.CastTurn(client.characterID, roomID, msg.SkillID)
	case CommandEndGame:
		payload, err = h.svc.End(client.characterID, roomID)
	case CommandSurrender:
		payload, err = h.svc.Surrender(client.characterID, roomID)
	case CommandQuitGame:
		err = h.svc.Quit(client.characterID, roomID)
		if err == nil {
			payload = gin.H{constants.JSONKeyMessage: "Entrant left the room."}
		}
	default:
		_ = client.writeJSON(gin.H{constants.JSONKeyError: "unknown command", constants.LogFieldCommand: msg.Command})
		return
	}

	if err != nil {
		_ = client.writeJSON(gin.H{constants.LogFieldCommand: msg.Command, constants.JSONKeyError: err.Error()})
		return
	}
	h.broadcast(roomID, msg.Command, payload)
}
