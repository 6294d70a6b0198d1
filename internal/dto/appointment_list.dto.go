package dto

type AppointmentListDTO struct {
	ID           uint     `json:"id"`
	Reference    string   `json:"reference"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Status       string   `json:"status"`
	CustomerName string   `json:"customer_name"`
	Services     []string `json:"services"`
	Total        float64  `json:"total"`
}
