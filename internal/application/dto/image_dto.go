package dto

// UpdateImageOrderRequest entrada de PUT /images/order.
type UpdateImageOrderRequest struct {
	URLs []string `json:"urls"`
}

// ImageOrderResponse respuesta {message, urls}.
type ImageOrderResponse struct {
	Message string   `json:"message"`
	URLs    []string `json:"urls"`
}
