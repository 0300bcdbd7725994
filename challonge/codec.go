package challonge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Envelope keys used by the API to wrap each resource.
const (
	tournamentKey  = "tournament"
	participantKey = "participant"
	matchKey       = "match"
	attachmentKey  = "match_attachment"
)

var (
	errMalformedJSON   = errors.New("malformed JSON")
	errMissingEnvelope = errors.New("missing envelope")
	errNotArray        = errors.New("expected a JSON array")
)

func parseRoot(body []byte, resource string) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &DecodeError{Resource: resource, Err: errMalformedJSON}
	}
	return gjson.ParseBytes(body), nil
}

// unwrap decodes one {"<key>": {...}} envelope.
func unwrap[T any](node gjson.Result, key string) (T, error) {
	var v T
	inner := node.Get(key)
	if !inner.Exists() || !inner.IsObject() {
		return v, &DecodeError{Resource: key, Err: fmt.Errorf("%w %q", errMissingEnvelope, key)}
	}
	if err := json.Unmarshal([]byte(inner.Raw), &v); err != nil {
		return v, &DecodeError{Resource: key, Err: err}
	}
	return v, nil
}

// unwrapAll decodes an array of envelopes, each unwrapped on its own.
func unwrapAll[T any](node gjson.Result, key string) ([]T, error) {
	if !node.IsArray() {
		return nil, &DecodeError{Resource: key, Err: errNotArray}
	}
	elems := node.Array()
	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		v, err := unwrap[T](elem, key)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Err = fmt.Errorf("element %d: %w", i, de.Err)
			}
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeOne[T any](body []byte, key string) (T, error) {
	root, err := parseRoot(body, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return unwrap[T](root, key)
}

func decodeList[T any](body []byte, key string) ([]T, error) {
	root, err := parseRoot(body, key)
	if err != nil {
		return nil, err
	}
	return unwrapAll[T](root, key)
}

// embedded extracts an array nested inside an envelope, such as
// tournament.matches, and decodes its elements independently of the outer
// object.
func embedded[T any](outer gjson.Result, field, key string) ([]T, error) {
	arr := outer.Get(field)
	if !arr.Exists() {
		return nil, &DecodeError{Resource: key, Err: fmt.Errorf("%w %q", errMissingEnvelope, field)}
	}
	return unwrapAll[T](arr, key)
}

func DecodeTournament(body []byte) (Tournament, error) {
	return decodeOne[Tournament](body, tournamentKey)
}

func DecodeTournaments(body []byte) ([]Tournament, error) {
	return decodeList[Tournament](body, tournamentKey)
}

// DecodeTournamentDetail reads the tournament and, when asked for, the
// matches and participants arrays living inside the tournament envelope.
// The embedded arrays never affect the decoded tournament fields.
func DecodeTournamentDetail(body []byte, includeMatches, includeParticipants bool) (TournamentDetail, error) {
	var detail TournamentDetail

	root, err := parseRoot(body, tournamentKey)
	if err != nil {
		return detail, err
	}

	if includeMatches {
		detail.Matches, err = embedded[Match](root.Get(tournamentKey), "matches", matchKey)
		if err != nil {
			return detail, err
		}
	}
	if includeParticipants {
		detail.Participants, err = embedded[Participant](root.Get(tournamentKey), "participants", participantKey)
		if err != nil {
			return detail, err
		}
	}

	detail.Tournament, err = unwrap[Tournament](root, tournamentKey)
	if err != nil {
		return detail, err
	}
	return detail, nil
}

func DecodeParticipant(body []byte) (Participant, error) {
	return decodeOne[Participant](body, participantKey)
}

func DecodeParticipants(body []byte) ([]Participant, error) {
	return decodeList[Participant](body, participantKey)
}

func DecodeParticipantDetail(body []byte, includeMatches bool) (ParticipantDetail, error) {
	var detail ParticipantDetail

	root, err := parseRoot(body, participantKey)
	if err != nil {
		return detail, err
	}
	if includeMatches {
		detail.Matches, err = embedded[Match](root.Get(participantKey), "matches", matchKey)
		if err != nil {
			return detail, err
		}
	}
	detail.Participant, err = unwrap[Participant](root, participantKey)
	if err != nil {
		return detail, err
	}
	return detail, nil
}

func DecodeMatch(body []byte) (Match, error) {
	return decodeOne[Match](body, matchKey)
}

func DecodeMatches(body []byte) ([]Match, error) {
	return decodeList[Match](body, matchKey)
}

func DecodeMatchDetail(body []byte, includeAttachments bool) (MatchDetail, error) {
	var detail MatchDetail

	root, err := parseRoot(body, matchKey)
	if err != nil {
		return detail, err
	}
	if includeAttachments {
		detail.Attachments, err = embedded[Attachment](root.Get(matchKey), "attachments", attachmentKey)
		if err != nil {
			return detail, err
		}
	}
	detail.Match, err = unwrap[Match](root, matchKey)
	if err != nil {
		return detail, err
	}
	return detail, nil
}

func DecodeAttachment(body []byte) (Attachment, error) {
	return decodeOne[Attachment](body, attachmentKey)
}

func DecodeAttachments(body []byte) ([]Attachment, error) {
	return decodeList[Attachment](body, attachmentKey)
}
