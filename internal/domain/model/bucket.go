package model

// Bucket is a named grouping (project/category/context) used for
// allocation and filtering. Deleting a Bucket clears bucket_id on its
// member tasks (I6); it never deletes the tasks themselves.
type Bucket struct {
	ID       int64
	Name     string
	Type     BucketType
	Config   map[string]interface{}
	Archived bool
}
