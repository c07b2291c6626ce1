package api

import "github.com/phrazzld/item-api/internal/domain"

// ItemResponse is the JSON representation of a processed item.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Email       string `json:"email"`
}

func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Status:      string(item.Status),
		Email:       item.Email,
	}
}

// itemsToResponse converts items to their JSON form. The result is never nil,
// so an empty batch encodes as [] rather than null.
func itemsToResponse(items []*domain.Item) []ItemResponse {
	resp := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		resp = append(resp, itemToResponse(item))
	}
	return resp
}
