package api

import (
	"github.com/phrazzld/mensagens-api/internal/domain"
)

// MessageResponse is the JSON representation of a message.
type MessageResponse struct {
	ID             int64  `json:"id"`
	UsuariosID     int64  `json:"usuarios_id"`
	DestinatarioID int64  `json:"destinatario_id"`
	Mensagem       string `json:"mensagem"`
}

// RouteIndex lists the available endpoints, keyed by action name.
type RouteIndex map[string]string

// routeIndex is served by GET /.
var routeIndex = RouteIndex{
	"LISTAR":     "GET /api/mensagens",
	"MOSTRAR":    "GET /api/mensagens/:id",
	"CRIAR":      "POST /api/mensagens BODY: { 'usuarios_id': number, 'destinatario_id': number, 'mensagem': string }",
	"SUBSTITUIR": "PUT /api/mensagens/:id BODY: { 'usuarios_id': number, 'destinatario_id': number, 'mensagem': string }",
	"ATUALIZAR":  "PATCH /api/mensagens/:id BODY: { 'usuarios_id': number || 'destinatario_id': number || 'mensagem': string }",
	"DELETAR":    "DELETE /api/mensagens/:id",
}

// messageToResponse converts a domain.Message to a MessageResponse
func messageToResponse(msg *domain.Message) MessageResponse {
	return MessageResponse{
		ID:             msg.ID,
		UsuariosID:     msg.UsuariosID,
		DestinatarioID: msg.DestinatarioID,
		Mensagem:       msg.Mensagem,
	}
}
