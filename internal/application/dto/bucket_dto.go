package dto

// CreateBucketRequest carries the input for BucketUseCase.CreateBucket.
type CreateBucketRequest struct {
	Name   string
	Type   string
	Config map[string]interface{}
}

// BucketDTO is the read-model of a Bucket.
type BucketDTO struct {
	ID       int64
	Name     string
	Type     string
	Config   map[string]interface{}
	Archived bool
}

// ListBucketsRequest carries filter input for BucketUseCase.ListBuckets.
type ListBucketsRequest struct {
	IncludeArchived bool
}
