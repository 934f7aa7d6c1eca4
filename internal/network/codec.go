package network

import (
	"errors"
	"fmt"
	"math"

	"snake/internal/domain"

	"google.golang.org/protobuf/encoding/protowire"
)

// Snapshot wire fields. Coordinates are sint32 so the off-grid marker
// (-1, -1) stays small on the wire.
const (
	fieldTick         protowire.Number = 1
	fieldGridWidth    protowire.Number = 2
	fieldGridHeight   protowire.Number = 3
	fieldHeadCell     protowire.Number = 4
	fieldBody         protowire.Number = 5
	fieldDirection    protowire.Number = 6
	fieldSpeed        protowire.Number = 7
	fieldSize         protowire.Number = 8
	fieldAlive        protowire.Number = 9
	fieldFood         protowire.Number = 10
	fieldFoodValid    protowire.Number = 11
	fieldPoison       protowire.Number = 12
	fieldPoisonActive protowire.Number = 13
	fieldPoisoned     protowire.Number = 14
	fieldScore        protowire.Number = 15
	fieldFPS          protowire.Number = 16
	fieldHeadX        protowire.Number = 17
	fieldHeadY        protowire.Number = 18

	coordX protowire.Number = 1
	coordY protowire.Number = 2
)

var ErrMalformed = errors.New("malformed snapshot")

func EncodeSnapshot(s domain.Snapshot) []byte {
	b := make([]byte, 0, 64+len(s.Body)*6)

	b = appendVarint(b, fieldTick, s.Tick)
	b = appendVarint(b, fieldGridWidth, uint64(s.GridWidth))
	b = appendVarint(b, fieldGridHeight, uint64(s.GridHeight))
	b = appendCell(b, fieldHeadCell, s.HeadCell)
	for _, c := range s.Body {
		b = appendCell(b, fieldBody, c)
	}
	b = appendVarint(b, fieldDirection, uint64(s.Direction))
	b = appendFloat(b, fieldSpeed, s.Speed)
	b = appendVarint(b, fieldSize, uint64(s.Size))
	b = appendBool(b, fieldAlive, s.Alive)
	b = appendCell(b, fieldFood, s.Food)
	b = appendBool(b, fieldFoodValid, s.FoodValid)
	b = appendCell(b, fieldPoison, s.Poison)
	b = appendBool(b, fieldPoisonActive, s.PoisonActive)
	b = appendBool(b, fieldPoisoned, s.Poisoned)
	b = appendVarint(b, fieldScore, uint64(s.Score))
	b = appendVarint(b, fieldFPS, uint64(s.FPS))
	b = appendFloat(b, fieldHeadX, s.Head.X)
	b = appendFloat(b, fieldHeadY, s.Head.Y)
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendCell(b []byte, num protowire.Number, c domain.Cell) []byte {
	var inner []byte
	inner = appendVarint(inner, coordX, protowire.EncodeZigZag(int64(c.X)))
	inner = appendVarint(inner, coordY, protowire.EncodeZigZag(int64(c.Y)))

	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

// DecodeSnapshot parses EncodeSnapshot output. Unknown fields are skipped.
func DecodeSnapshot(b []byte) (domain.Snapshot, error) {
	s := domain.Snapshot{
		HeadCell: domain.OffGrid,
		Food:     domain.OffGrid,
		Poison:   domain.OffGrid,
	}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return s, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return s, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			setVarintField(&s, num, v)

		case typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return s, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			setFloatField(&s, num, math.Float32frombits(v))

		case typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return s, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			if !isCellField(num) {
				continue
			}
			c, err := decodeCell(v)
			if err != nil {
				return s, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, err)
			}
			setCellField(&s, num, c)

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return s, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return s, nil
}

func isCellField(num protowire.Number) bool {
	switch num {
	case fieldHeadCell, fieldBody, fieldFood, fieldPoison:
		return true
	}
	return false
}

func decodeCell(b []byte) (domain.Cell, error) {
	var c domain.Cell
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return c, protowire.ParseError(n)
		}
		b = b[n:]

		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return c, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return c, protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case coordX:
			c.X = int32(protowire.DecodeZigZag(v))
		case coordY:
			c.Y = int32(protowire.DecodeZigZag(v))
		}
	}
	return c, nil
}

func setVarintField(s *domain.Snapshot, num protowire.Number, v uint64) {
	switch num {
	case fieldTick:
		s.Tick = v
	case fieldGridWidth:
		s.GridWidth = int32(v)
	case fieldGridHeight:
		s.GridHeight = int32(v)
	case fieldDirection:
		s.Direction = domain.Direction(v)
	case fieldSize:
		s.Size = int(v)
	case fieldAlive:
		s.Alive = protowire.DecodeBool(v)
	case fieldFoodValid:
		s.FoodValid = protowire.DecodeBool(v)
	case fieldPoisonActive:
		s.PoisonActive = protowire.DecodeBool(v)
	case fieldPoisoned:
		s.Poisoned = protowire.DecodeBool(v)
	case fieldScore:
		s.Score = int(v)
	case fieldFPS:
		s.FPS = int(v)
	}
}

func setFloatField(s *domain.Snapshot, num protowire.Number, v float32) {
	switch num {
	case fieldSpeed:
		s.Speed = v
	case fieldHeadX:
		s.Head.X = v
	case fieldHeadY:
		s.Head.Y = v
	}
}

func setCellField(s *domain.Snapshot, num protowire.Number, c domain.Cell) {
	switch num {
	case fieldHeadCell:
		s.HeadCell = c
	case fieldBody:
		s.Body = append(s.Body, c)
	case fieldFood:
		s.Food = c
	case fieldPoison:
		s.Poison = c
	}
}
