package apicollectionv1

import (
	"context"
)

func listCollections(ctx context.Context) ([]*CollectionResponse, error) {

	s := GetServicer(ctx)

	response := []*CollectionResponse{}
	for _, col := range s.ListCollections() {
		response = append(response, newCollectionResponse(col))
	}

	return response, nil
}
