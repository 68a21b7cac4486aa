package dto

type SearchResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Tasks    []TaskResponse    `json:"tasks"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
