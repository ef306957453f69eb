package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Interactive test client: creates (or joins) a room over the HTTP API,
// connects to /ws and maps stdin commands onto game events.

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type roomResponse struct {
	RoomID    string `json:"room_id"`
	PlayerID  string `json:"player_id"`
	ShareLink string `json:"share_link"`
}

func send(c *websocket.Conn, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.WriteJSON(&envelope{Event: event, Data: data})
}

func createOrJoin(host, name, roomID string) (*roomResponse, error) {
	endpoint := "http://" + host + "/api/rooms/create"
	body := map[string]string{"player_name": name}
	if roomID != "" {
		endpoint = "http://" + host + "/api/rooms/join"
		body["room_id"] = roomID
	}

	data, _ := json.Marshal(body)
	resp, err := http.Post(endpoint, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var room roomResponse
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}

func main() {
	host := flag.String("host", "localhost:8080", "server address")
	name := flag.String("name", "tester", "player name")
	roomID := flag.String("room", "", "room to join (empty = create a new room)")
	flag.Parse()

	room, err := createOrJoin(*host, *name, *roomID)
	if err != nil {
		log.Fatalf("Room setup failed: %v", err)
	}
	log.Printf("Room %s, player %s", room.RoomID, room.PlayerID)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	u := url.URL{Scheme: "ws", Host: *host, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			var env envelope
			if err := c.ReadJSON(&env); err != nil {
				log.Println("Read error:", err)
				return
			}
			log.Printf("<- RECV %s: %s", env.Event, string(env.Data))
		}
	}()

	// Join handshake
	if err := send(c, "join_room", map[string]string{
		"room_id":   room.RoomID,
		"player_id": room.PlayerID,
	}); err != nil {
		log.Fatalf("Join failed: %v", err)
	}

	fmt.Println(`Commands:
  start                      start the game (host only)
  move <x> <y>               move to position
  examine <object>           examine an object (book, painting, note, ...)
  pickup <item>              pick up an item (uv_lamp)
  use <item> [target]        use an item (uv_lamp note, combine_keys, master_key door)
  solve <puzzle> <answer>    solve code_lock/safe; for jigsaw the answer is a piece index
  say <text>                 chat
  quick <key>                quick chat (look, found, help, idea, yes, no)`)

	base := map[string]string{"room_id": room.RoomID, "player_id": room.PlayerID}

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			fields := strings.Fields(text)
			if len(fields) == 0 {
				continue
			}

			var event string
			payload := map[string]interface{}{}
			for k, v := range base {
				payload[k] = v
			}

			switch fields[0] {
			case "start":
				event = "start_game"
			case "move":
				if len(fields) < 3 {
					continue
				}
				x, _ := strconv.ParseFloat(fields[1], 64)
				y, _ := strconv.ParseFloat(fields[2], 64)
				event = "player_move"
				payload["position"] = map[string]float64{"x": x, "y": y}
			case "examine":
				if len(fields) < 2 {
					continue
				}
				event = "examine_object"
				payload["object_id"] = fields[1]
			case "pickup":
				if len(fields) < 2 {
					continue
				}
				event = "pickup_item"
				payload["item_id"] = fields[1]
			case "use":
				if len(fields) < 2 {
					continue
				}
				event = "use_item"
				payload["item_id"] = fields[1]
				if len(fields) > 2 {
					payload["target_id"] = fields[2]
				}
			case "solve":
				if len(fields) < 3 {
					continue
				}
				event = "solve_puzzle"
				payload["puzzle_id"] = fields[1]
				if fields[1] == "jigsaw" {
					idx, _ := strconv.Atoi(fields[2])
					payload["piece_index"] = idx
				} else {
					payload["answer"] = fields[2]
				}
			case "say":
				event = "send_message"
				payload["message"] = strings.TrimSpace(strings.TrimPrefix(text, "say"))
			case "quick":
				if len(fields) < 2 {
					continue
				}
				event = "quick_chat"
				payload["quick_message"] = fields[1]
			default:
				log.Printf("Unknown command %q", fields[0])
				continue
			}

			if err := send(c, event, payload); err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %s", event)
		}
	}
}
