package network

import (
	"sync"

	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/messages"
)

// Client is an observer connected to one lobby's game stream
type Client struct {
	ID      uint32
	LobbyID string
	// send is closed when the client is removed
	send chan *messages.Message
}

// Messages returns the client's outgoing message channel.
func (c *Client) Messages() <-chan *messages.Message {
	return c.send
}

// ClientManager tracks connected observers per lobby
type ClientManager struct {
	clientsLock sync.RWMutex
	clients     map[string]map[uint32]*Client
	lastID      uint32
	bufferSize  int
}

// NewClientManager creates a new ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:    make(map[string]map[uint32]*Client),
		bufferSize: messages.MessageBufferSize,
	}
}

// ConnectClient registers a new observer of lobbyID
func (cm *ClientManager) ConnectClient(lobbyID string) *Client {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	cm.lastID++
	client := &Client{
		ID:      cm.lastID,
		LobbyID: lobbyID,
		send:    make(chan *messages.Message, cm.bufferSize),
	}
	if cm.clients[lobbyID] == nil {
		cm.clients[lobbyID] = make(map[uint32]*Client)
	}
	cm.clients[lobbyID][client.ID] = client
	log.Debug("Client %d observing lobby %s", client.ID, lobbyID)
	return client
}

// DisconnectClient removes a client from the manager. It is safe to call
// more than once.
func (cm *ClientManager) DisconnectClient(client *Client) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	lobbyClients, ok := cm.clients[client.LobbyID]
	if !ok {
		return
	}
	if _, ok := lobbyClients[client.ID]; !ok {
		return
	}
	delete(lobbyClients, client.ID)
	close(client.send)
	if len(lobbyClients) == 0 {
		delete(cm.clients, client.LobbyID)
	}
	log.Debug("Client %d stopped observing lobby %s", client.ID, client.LobbyID)
}

// Broadcast queues msg for every observer of lobbyID and returns how many
// received it. Observers whose buffer is full miss the message.
func (cm *ClientManager) Broadcast(lobbyID string, msg *messages.Message) int {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()

	sent := 0
	for _, client := range cm.clients[lobbyID] {
		select {
		case client.send <- msg:
			sent++
		default:
			log.Warn("Dropped %s message for client %d: buffer full", msg.Type, client.ID)
		}
	}
	return sent
}

// ClientCount returns the number of observers of lobbyID
func (cm *ClientManager) ClientCount(lobbyID string) int {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	return len(cm.clients[lobbyID])
}
