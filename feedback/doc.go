// Package feedback implements both sides of the voice feedback upload.
//
// Client is the capture side: it implements capture.Submitter and posts the
// recording as multipart/form-data to POST /api/feedback/voice with the
// stored bearer token. Service and Handler are the receiving side run by
// feedbackd: they store the audio, optionally transcribe short recordings,
// and keep a listing per prediction.
//
// Wire contract:
//
//	POST /api/feedback/voice
//	Authorization: Bearer <token>
//	Content-Type: multipart/form-data
//	  audio          file part, filename feedback.wav
//	  prediction_id  text part
//
// Any 2xx answer is success. For anything else the response body is the
// error detail.
package feedback
