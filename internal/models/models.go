package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record status values. Soft-deleted records keep their document but are
// excluded from every read path.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Scenario is a relationship-scenario card users browse and share.
// Created by the seeding tool; only shareCount is mutated afterwards.
type Scenario struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Category   string             `bson:"category" json:"category"`
	Story      string             `bson:"story" json:"story"`
	Tags       []string           `bson:"tags" json:"tags"`
	ShareCount int64              `bson:"shareCount" json:"shareCount"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	DeletedAt  *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// Share grants access to a scenario's answer thread via an opaque token.
// Token is unique among active shares (enforced by index + retry on create).
type Share struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token      string             `bson:"token" json:"token"`
	ScenarioID primitive.ObjectID `bson:"scenarioId" json:"scenarioId"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	DeletedAt  *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// Answer is one person's response on a share's thread.
type Answer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShareID     primitive.ObjectID `bson:"shareId" json:"shareId"`
	Name        string             `bson:"name" json:"name"`
	Perspective string             `bson:"perspective" json:"perspective"`
	Public      bool               `bson:"public" json:"public"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	DeletedAt   *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// ScenarioListItem is the list-view projection: story truncated to a preview.
type ScenarioListItem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Preview    string   `json:"preview"`
	Tags       []string `json:"tags"`
	ShareCount int64    `json:"shareCount"`
}

// ScenarioDetail carries the full story text.
type ScenarioDetail struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	FullText   string   `json:"fullText"`
	Tags       []string `json:"tags"`
	ShareCount int64    `json:"shareCount"`
}

// AnswerListItem is the public view of an answer.
type AnswerListItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Perspective string    `json:"perspective"`
	CreatedAt   time.Time `json:"createdAt"`
}
