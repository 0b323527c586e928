package client

import (
	"net/http"
)

// Request — запрос, построенный по Endpoint и переданный в Transport.
//
// Path относителен базового URL API. Ровно одно из Body/Form может быть
// заполнено: Body кодируется транспортом в JSON, Form — в multipart.
type Request struct {
	Operation string
	Method    string
	Path      string
	Query     Query
	Body      any
	Form      *Form
	Header    http.Header
}

// URL возвращает путь вместе с закодированным query.
func (r *Request) URL() string {
	if qs := r.Query.Encode(); qs != "" {
		return r.Path + "?" + qs
	}
	return r.Path
}

// HasBody сообщает, несёт ли запрос тело.
func (r *Request) HasBody() bool {
	return r.Body != nil || r.Form != nil
}
