package service

import (
	"zorp/internal/domain/catalog"
	"zorp/internal/domain/trip"
)

// starterHistory returns the demo rides every fresh account starts with.
// Record ids are namespaced by rider so the table stays unique.
func starterHistory(riderID string) []*trip.HistoryRecord {
	return []*trip.HistoryRecord{
		{
			ID:          riderID + "-h1",
			Date:        "2024-01-15",
			Time:        "14:30",
			Pickup:      "Victoria Island, Lagos",
			Destination: "Lekki Phase 1, Lagos",
			Driver:      trip.Driver{Name: "John D.", Phone: "+234 800 123 4567", Rating: 4.8, Avatar: "JD"},
			Vehicle:     "Toyota Camry - ABC 123 XY",
			RideClass:   catalog.ClassBasic,
			Price:       1200,
		},
		{
			ID:          riderID + "-h2",
			Date:        "2024-01-12",
			Time:        "09:15",
			Pickup:      "Ikeja, Lagos",
			Destination: "Mushin, Lagos",
			Driver:      trip.Driver{Name: "Sarah M.", Phone: "+234 800 234 5678", Rating: 4.9, Avatar: "SM"},
			Vehicle:     "Honda Accord - DEF 456 YZ",
			RideClass:   catalog.ClassLuxury,
			Price:       2500,
		},
		{
			ID:          riderID + "-h3",
			Date:        "2024-01-10",
			Time:        "16:45",
			Pickup:      "Surulere, Lagos",
			Destination: "Yaba, Lagos",
			Driver:      trip.Driver{Name: "Mike T.", Phone: "+234 800 345 6789", Rating: 4.7, Avatar: "MT"},
			Vehicle:     "Nissan Altima - GHI 789 AB",
			RideClass:   catalog.ClassBasic,
			Price:       800,
		},
	}
}
