package realtime

import (
	"encoding/json"
	"strings"

	"furniture_estimates/internal/domain/entities"
)

const (
	topicPrefix = "estimate:"
	KindStatus  = "status"
	KindResult  = "result"
	// TopicPattern matches every estimate topic, for Redis PSUBSCRIBE.
	TopicPattern = topicPrefix + "*"
)

func StatusTopic(userID string) string { return topicPrefix + userID + ":" + KindStatus }
func ResultTopic(userID string) string { return topicPrefix + userID + ":" + KindResult }

// ParseTopic splits "estimate:<userId>:<kind>" into its user and kind.
func ParseTopic(topic string) (userID, kind string, ok bool) {
	rest, found := strings.CutPrefix(topic, topicPrefix)
	if !found {
		return "", "", false
	}
	i := strings.LastIndex(rest, ":")
	if i <= 0 || i == len(rest)-1 {
		return "", "", false
	}
	return rest[:i], rest[i+1:], true
}

type StatusPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ResultPayload struct {
	Estimate entities.Estimate `json:"estimate"`
}

func encodeStatus(status, message string) ([]byte, error) {
	return json.Marshal(StatusPayload{Status: status, Message: message})
}

func encodeResult(e entities.Estimate) ([]byte, error) {
	return json.Marshal(ResultPayload{Estimate: e})
}
