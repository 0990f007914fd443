package directory

import (
	"fmt"
	"time"

	"github.com/om-bhaiya/messle/internal/models"
	"github.com/xitongsys/parquet-go/schema"
)

// BaseEvent is the common envelope for everything the directory emits.
type BaseEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	City      string `json:"city" parquet:"name=city,type=BYTE_ARRAY,convertedtype=UTF8"`
	DeviceID  string `json:"deviceId,omitempty" parquet:"name=deviceId,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// RankSnapshotEvent captures one listing's position in a ranked view.
type RankSnapshotEvent struct {
	BaseEvent
	ListingID    string   `json:"listingId" parquet:"name=listingId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Rank         int32    `json:"rank" parquet:"name=rank,type=INT32"`
	Score        float64  `json:"score" parquet:"name=score,type=DOUBLE"`
	DistanceKm   *float64 `json:"distanceKm,omitempty" parquet:"name=distanceKm,type=DOUBLE,repetitiontype=OPTIONAL"`
	Favorite     bool     `json:"favorite" parquet:"name=favorite,type=BOOLEAN"`
	MonthlyPrice float64  `json:"monthlyPrice" parquet:"name=monthlyPrice,type=DOUBLE"`
	Rating       float64  `json:"rating" parquet:"name=rating,type=DOUBLE"`
	TotalRatings int32    `json:"totalRatings" parquet:"name=totalRatings,type=INT32"`
}

// RatingEvent records a rating submitted through the directory.
type RatingEvent struct {
	BaseEvent
	ListingID  string  `json:"listingId" parquet:"name=listingId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Stars      int32   `json:"stars" parquet:"name=stars,type=INT32"`
	NewAverage float64 `json:"newAverage" parquet:"name=newAverage,type=DOUBLE"`
}

// ImportEvent records a bulk listing import.
type ImportEvent struct {
	BaseEvent
	Source   string `json:"source" parquet:"name=source,type=BYTE_ARRAY,convertedtype=UTF8"`
	Imported int32  `json:"imported" parquet:"name=imported,type=INT32"`
}

func NewBaseEvent(eventType, city, deviceID string, at time.Time) BaseEvent {
	return BaseEvent{
		Timestamp: at.Unix(),
		EventType: eventType,
		City:      city,
		DeviceID:  deviceID,
	}
}

// GetSchema returns the parquet schema handler for a topic's event struct.
func GetSchema(topic string) (*schema.SchemaHandler, error) {
	switch topic {
	case models.TopicRankSnapshots:
		return schema.NewSchemaHandlerFromStruct(new(RankSnapshotEvent))
	case models.TopicRatings:
		return schema.NewSchemaHandlerFromStruct(new(RatingEvent))
	case models.TopicImports:
		return schema.NewSchemaHandlerFromStruct(new(ImportEvent))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
}
