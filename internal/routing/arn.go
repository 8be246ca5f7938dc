package routing

import (
	"fmt"
	"strings"
)

// ARN is a parsed Amazon Resource Name.
type ARN struct {
	Partition    string
	Service      string
	Region       string
	Account      string
	ResourceType string
	Resource     string
}

// ParseARN splits arn:partition:service:region:account:resource. A resource of
// the form "type/name" or "type:name" is further split into ResourceType and Resource.
func ParseARN(raw string) (ARN, error) {
	elements := strings.SplitN(strings.TrimSpace(raw), ":", 6)
	if len(elements) != 6 || elements[0] != "arn" {
		return ARN{}, fmt.Errorf("invalid arn %q", raw)
	}

	arn := ARN{
		Partition: elements[1],
		Service:   elements[2],
		Region:    elements[3],
		Account:   elements[4],
		Resource:  elements[5],
	}
	if typ, res, ok := strings.Cut(arn.Resource, "/"); ok {
		arn.ResourceType, arn.Resource = typ, res
	} else if typ, res, ok := strings.Cut(arn.Resource, ":"); ok {
		arn.ResourceType, arn.Resource = typ, res
	}
	return arn, nil
}
