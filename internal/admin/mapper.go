package admin

import "myshop-be/internal/order"

type BucketResponse struct {
	Status string           `json:"status"`
	Orders []order.Response `json:"orders"`
}

func ToBucketResponses(buckets []Bucket) []BucketResponse {
	out := make([]BucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, BucketResponse{
			Status: string(b.Status),
			Orders: order.ToResponses(b.Orders),
		})
	}
	return out
}
