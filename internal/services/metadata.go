package services

import (
	"fmt"
	"strings"

	"dojohub/internal/common"

	"github.com/google/uuid"
)

// Metadata keys attached by the orchestrator when it originates gateway
// objects and read back by the webhook dispatcher. The "type" value is
// the discriminant that routes an event to an orchestrator method.
const (
	metadataKeyType      = "type"
	metadataKeyDojoID    = "dojoId"
	metadataKeyClassID   = "classId"
	metadataKeyStudentID = "studentId"
	metadataKeyChildIDs  = "childIds"
	metadataKeyPriceID   = "priceId"
)

// ObjectKind is the metadata discriminant.
type ObjectKind string

const (
	ObjectKindDojoSub      ObjectKind = "DojoSub"
	ObjectKindClassSub     ObjectKind = "ClassSub"
	ObjectKindOneTimeClass ObjectKind = "OneTimeClass"
)

// ObjectMetadata is the parsed, tagged form of the loose metadata bag.
// Which ID fields are set depends on Kind: DojoSub carries DojoID,
// ClassSub and OneTimeClass carry ClassID and StudentID.
type ObjectMetadata struct {
	Kind      ObjectKind
	DojoID    uuid.UUID
	ClassID   uuid.UUID
	StudentID uuid.UUID
}

// ParseObjectMetadata validates the discriminant and the fields it
// requires. An unrecognized discriminant is a hard error, never guessed
// or ignored.
func ParseObjectMetadata(md map[string]string) (*ObjectMetadata, error) {
	kind, ok := md[metadataKeyType]
	if !ok || kind == "" {
		return nil, common.NewValidationError(metadataKeyType, "missing metadata discriminant")
	}

	switch ObjectKind(kind) {
	case ObjectKindDojoSub:
		dojoID, err := parseMetadataUUID(md, metadataKeyDojoID)
		if err != nil {
			return nil, err
		}
		return &ObjectMetadata{Kind: ObjectKindDojoSub, DojoID: dojoID}, nil

	case ObjectKindClassSub, ObjectKindOneTimeClass:
		classID, err := parseMetadataUUID(md, metadataKeyClassID)
		if err != nil {
			return nil, err
		}
		studentID, err := parseMetadataUUID(md, metadataKeyStudentID)
		if err != nil {
			return nil, err
		}
		return &ObjectMetadata{Kind: ObjectKind(kind), ClassID: classID, StudentID: studentID}, nil

	default:
		return nil, common.NewValidationError(metadataKeyType, fmt.Sprintf("unrecognized metadata discriminant %q", kind))
	}
}

// checkoutMetadata is the bulk-checkout payment intent contract: one
// class, one price, N children.
type checkoutMetadata struct {
	Kind     ObjectKind
	ClassID  uuid.UUID
	ChildIDs []uuid.UUID
	PriceID  string
}

func parseCheckoutMetadata(md map[string]string) (*checkoutMetadata, error) {
	kind, ok := md[metadataKeyType]
	if !ok || kind == "" {
		return nil, common.NewValidationError(metadataKeyType, "missing metadata discriminant")
	}
	if ObjectKind(kind) != ObjectKindClassSub && ObjectKind(kind) != ObjectKindOneTimeClass {
		return nil, common.NewValidationError(metadataKeyType, fmt.Sprintf("unrecognized metadata discriminant %q", kind))
	}

	classID, err := parseMetadataUUID(md, metadataKeyClassID)
	if err != nil {
		return nil, err
	}

	priceID, ok := md[metadataKeyPriceID]
	if !ok || priceID == "" {
		return nil, common.NewValidationError(metadataKeyPriceID, "missing required metadata field")
	}

	raw, ok := md[metadataKeyChildIDs]
	if !ok || raw == "" {
		return nil, common.NewValidationError(metadataKeyChildIDs, "missing required metadata field")
	}
	var childIDs []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, common.NewValidationError(metadataKeyChildIDs, "invalid child identifier")
		}
		childIDs = append(childIDs, id)
	}

	return &checkoutMetadata{
		Kind:     ObjectKind(kind),
		ClassID:  classID,
		ChildIDs: childIDs,
		PriceID:  priceID,
	}, nil
}

func parseMetadataUUID(md map[string]string, key string) (uuid.UUID, error) {
	raw, ok := md[key]
	if !ok || raw == "" {
		return uuid.Nil, common.NewValidationError(key, "missing required metadata field")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, common.NewValidationError(key, "invalid UUID in metadata")
	}
	return id, nil
}

func dojoSubMetadata(dojoID uuid.UUID) map[string]string {
	return map[string]string{
		metadataKeyType:   string(ObjectKindDojoSub),
		metadataKeyDojoID: dojoID.String(),
	}
}

func classSubMetadata(classID, studentID uuid.UUID) map[string]string {
	return map[string]string{
		metadataKeyType:      string(ObjectKindClassSub),
		metadataKeyClassID:   classID.String(),
		metadataKeyStudentID: studentID.String(),
	}
}

func checkoutIntentMetadata(kind ObjectKind, classID uuid.UUID, childIDs []uuid.UUID, priceID string) map[string]string {
	ids := make([]string, 0, len(childIDs))
	for _, id := range childIDs {
		ids = append(ids, id.String())
	}
	return map[string]string{
		metadataKeyType:     string(kind),
		metadataKeyClassID:  classID.String(),
		metadataKeyChildIDs: strings.Join(ids, ","),
		metadataKeyPriceID:  priceID,
	}
}
