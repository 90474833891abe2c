package handler

import (
	"github.com/stylematch/waitlist/internal/core/domain"
	"github.com/stylematch/waitlist/internal/core/ports"
)

const submitMessage = "thanks for joining the waitlist"

func toSubmitResponse(r *ports.SubmitResult) submitResponse {
	return submitResponse{Success: true, Message: submitMessage, ID: r.ID}
}

func toListResponse(subs []domain.Submission) listResponse {
	data := make([]any, len(subs))
	for i, s := range subs {
		data[i] = s
	}
	return listResponse{Data: data, Count: len(data)}
}

func toDeleteResponse(kind domain.Kind) deleteResponse {
	return deleteResponse{Success: true, Message: string(kind) + " deleted"}
}
