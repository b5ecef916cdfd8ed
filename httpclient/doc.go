// Package httpclient is the outbound HTTP layer: a Client with bearer,
// basic and API key auth, TLS settings, optional retry on retryable
// failures, multipart bodies and status code classification.
//
// The voice upload and the speech-to-text sidecar both go through it:
//
//	c, err := httpclient.New(httpclient.Config{BaseURL: "http://localhost:8080"})
//	resp, err := c.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/api/feedback/voice",
//	    Auth:   httpclient.BearerAuth(token),
//	    Body: &httpclient.MultipartBody{
//	        Fields: map[string]string{"prediction_id": "42"},
//	        Files:  []httpclient.FileField{{FieldName: "audio", FileName: "feedback.wav", ContentType: "audio/wav", Data: wav}},
//	    },
//	})
//
// A non-2xx answer returns the Response together with an *Error whose Code
// classifies the status; StatusAndBody extracts both for callers that
// surface the server's message.
package httpclient
