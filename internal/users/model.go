package users

import (
	"github.com/nikmy/sift/pkg/filters"
	"github.com/nikmy/sift/pkg/filters/mongocond"
)

type User struct {
	Name  string  `json:"name"  bson:"name"`
	Email *string `json:"email" bson:"email"`
	Age   int     `json:"age"   bson:"age"`
	Role  Role    `json:"role"  bson:"role"`
}

type Role int

const (
	Guest Role = iota
	Member
	Admin
)

// Schema declares the User shape for the in-memory backend.
var Schema = filters.Schema[User]{
	"name":  func(u User) any { return u.Name },
	"email": func(u User) any { return u.Email },
	"age":   func(u User) any { return u.Age },
	"role":  func(u User) any { return u.Role },
}

// DocumentKeys declares the same shape for the mongo backend.
var DocumentKeys = mongocond.Fields{
	"name":  "name",
	"email": "email",
	"age":   "age",
	"role":  "role",
}

// Filters is the declared user filter set, shared by every backend.
var Filters = filters.Specs{
	{Name: "minAge", Spec: filters.Spec{Kind: filters.Gte, Field: "age"}},
	{Name: "maxAge", Spec: filters.Spec{Kind: filters.Lte, Field: "age"}},
	{Name: "exactAge", Spec: filters.Spec{Kind: filters.And, Conditions: []filters.Condition{
		{Kind: filters.Gte, Field: "age"},
		{Kind: filters.Lte, Field: "age"},
	}}},
	{Name: "search", Spec: filters.Spec{Kind: filters.Contains, Field: "name", CaseInsensitive: true}},
	{Name: "role", Spec: filters.Spec{Kind: filters.Eq}},
	{Name: "hasEmail", Spec: filters.Spec{Kind: filters.IsNotNull, Field: "email"}},
	{Name: "ageIn", Spec: filters.Spec{Kind: filters.InArray, Field: "age"}},
}

// Matcher compiles the user filter set for in-memory use.
func Matcher() (*filters.Filters[User], error) {
	return filters.New(Schema, Filters)
}
