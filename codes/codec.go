package codes

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidCode = errors.New("invalid team code")

// Обратимое запутывание идентификатора команды: умножение на нечётную
// константу по модулю 2^32 и base36. Криптостойкость не цель — код лишь не
// должен выглядеть как порядковый номер.
const (
	codeMultiplier uint32 = 0x9E3779B1
	codeInverse    uint32 = 0x0E8B2F51 // мультипликативно обратное к codeMultiplier mod 2^32
	codeSalt       uint32 = 0x5A17C0DE
)

type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

// Encode превращает идентификатор команды в код приглашения.
func (c *Codec) Encode(teamID int) string {
	v := (uint32(teamID) ^ codeSalt) * codeMultiplier
	return strings.ToUpper(strconv.FormatUint(uint64(v), 36))
}

// Decode восстанавливает идентификатор команды из кода.
func (c *Codec) Decode(code string) (int, error) {
	v, err := strconv.ParseUint(strings.ToLower(strings.TrimSpace(code)), 36, 32)
	if err != nil {
		return 0, ErrInvalidCode
	}
	id := int(int32(uint32(v)*codeInverse ^ codeSalt))
	if id <= 0 {
		return 0, ErrInvalidCode
	}
	return id, nil
}
