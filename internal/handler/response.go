package handler

import "github.com/jwalitptl/hospital-api/pkg/httputil"

type Response = httputil.Response

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: httputil.StatusSuccess,
		Data:   data,
	}
}

func NewMessageResponse(message string) *Response {
	return &Response{
		Status:  httputil.StatusSuccess,
		Message: message,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  httputil.StatusError,
		Message: message,
	}
}
