/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"fmt"
)

// Record is a single resource as served on the wire.
type Record = map[string]any

const (
	postCount    = 100
	userCount    = 10
	commentCount = 500
	albumCount   = 100
	photoCount   = 5000
)

// Dataset holds the deterministic fixture data served by the fake provider,
// records are ordered by id.
type Dataset struct {
	resources map[string][]Record
}

// NewDataset generates the dataset.  Every call yields identical content.
func NewDataset() *Dataset {
	return &Dataset{
		resources: map[string][]Record{
			"posts":    generate(postCount, post),
			"users":    generate(userCount, user),
			"comments": generate(commentCount, comment),
			"albums":   generate(albumCount, album),
			"photos":   generate(photoCount, photo),
		},
	}
}

func generate(n int, f func(int) Record) []Record {
	records := make([]Record, n)

	for i := range records {
		records[i] = f(i + 1)
	}

	return records
}

// List returns the records of a resource and whether the resource is known.
// The slice must not be modified.
func (d *Dataset) List(resource string) ([]Record, bool) {
	records, ok := d.resources[resource]

	return records, ok
}

// Get returns a record by id.
func (d *Dataset) Get(resource string, id int) (Record, bool) {
	records, ok := d.resources[resource]
	if !ok || id < 1 || id > len(records) {
		return nil, false
	}

	return records[id-1], true
}

// Count returns the number of records of a resource.
func (d *Dataset) Count(resource string) int {
	return len(d.resources[resource])
}

func post(id int) Record {
	return Record{
		"userId": (id-1)/10 + 1,
		"id":     id,
		"title":  fmt.Sprintf("post title %d", id),
		"body":   fmt.Sprintf("post body %d", id),
	}
}

func user(id int) Record {
	return Record{
		"id":       id,
		"name":     fmt.Sprintf("User %d", id),
		"username": fmt.Sprintf("user%d", id),
		"email":    fmt.Sprintf("user%d@example.com", id),
		"address": Record{
			"street":  fmt.Sprintf("%d Main Street", id),
			"suite":   fmt.Sprintf("Apt. %d", 100+id),
			"city":    "Gwenborough",
			"zipcode": fmt.Sprintf("%05d-%04d", 90000+id, id),
			"geo": Record{
				"lat": fmt.Sprintf("%.4f", -37.0+float64(id)),
				"lng": fmt.Sprintf("%.4f", 81.0+float64(id)),
			},
		},
		"phone":   fmt.Sprintf("1-770-736-%04d", 8000+id),
		"website": fmt.Sprintf("user%d.org", id),
		"company": Record{
			"name":        fmt.Sprintf("Company %d", id),
			"catchPhrase": "Multi-layered client-server neural-net",
			"bs":          "harness real-time e-markets",
		},
	}
}

func comment(id int) Record {
	return Record{
		"postId": (id-1)/5 + 1,
		"id":     id,
		"name":   fmt.Sprintf("comment %d", id),
		"email":  fmt.Sprintf("commenter%d@example.net", id),
		"body":   fmt.Sprintf("comment body %d", id),
	}
}

func album(id int) Record {
	return Record{
		"userId": (id-1)/10 + 1,
		"id":     id,
		"title":  fmt.Sprintf("album %d", id),
	}
}

func photo(id int) Record {
	return Record{
		"albumId":      (id-1)/50 + 1,
		"id":           id,
		"title":        fmt.Sprintf("photo %d", id),
		"url":          fmt.Sprintf("https://via.placeholder.com/600/%06x", id),
		"thumbnailUrl": fmt.Sprintf("https://via.placeholder.com/150/%06x", id),
	}
}
