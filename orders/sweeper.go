package orders

import (
	"context"
	"log"
	"time"

	"vastra/db"
	"vastra/models"

	"go.mongodb.org/mongo-driver/bson"
)

// StartTrackingSweeper periodically advances every in-flight order, so
// plain order reads stay fresh without taking the mutating track path.
// Runs until the process exits.
func StartTrackingSweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		sweepTracking()
	}
}

func sweepTracking() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	filter := bson.M{"status": bson.M{"$in": []string{models.OrderProcessing, models.OrderShipped}}}
	cursor, err := db.OrderCollection.Find(ctx, filter)
	if err != nil {
		log.Println("tracking sweep Find error:", err)
		return
	}
	defer cursor.Close(ctx)

	now := time.Now()
	advanced := 0
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			log.Println("tracking sweep decode error:", err)
			continue
		}

		if TrackingCurrent(&order, now) {
			continue
		}

		if err := advance(ctx, &order, now); err != nil {
			log.Println("tracking sweep advance error:", err)
			continue
		}
		advanced++
	}

	if advanced > 0 {
		log.Printf("tracking sweep: advanced %d orders", advanced)
	}
}
