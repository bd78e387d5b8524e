// Package classify 提供 O(1) 的字节分类判定 仅由查表或范围比较完成
//
// 表的内容是协议契约的一部分 而不是可自由调整的实现细节：
// tokenTable 对应 RFC 7230 tchar 的定义 separatorTable 对应 RFC 7230
// 分隔符集合 encodedTable 对应 RFC 3986 需要被 percent-encode 的字节集合
// 外加浏览器/解析器约定俗成需要转义的 HTML 特殊字符
package classify

var tokenTable = [256]bool{
	false, false, false, false, false, false, false, false, // 0x00-0x07
	false, false, false, false, false, false, false, false, // 0x08-0x0f
	false, false, false, false, false, false, false, false, // 0x10-0x17
	false, false, false, false, false, false, false, false, // 0x18-0x1f
	false, true, false, true, true, true, true, true, // 0x20-0x27
	false, false, true, true, false, true, true, false, // 0x28-0x2f
	true, true, true, true, true, true, true, true, // 0x30-0x37
	true, true, false, false, false, false, false, false, // 0x38-0x3f
	false, true, true, true, true, true, true, true, // 0x40-0x47
	true, true, true, true, true, true, true, true, // 0x48-0x4f
	true, true, true, true, true, true, true, true, // 0x50-0x57
	true, true, true, false, false, false, true, true, // 0x58-0x5f
	true, true, true, true, true, true, true, true, // 0x60-0x67
	true, true, true, true, true, true, true, true, // 0x68-0x6f
	true, true, true, true, true, true, true, true, // 0x70-0x77
	true, true, true, false, true, false, true, false, // 0x78-0x7f
	false, false, false, false, false, false, false, false, // 0x80-0x87
	false, false, false, false, false, false, false, false, // 0x88-0x8f
	false, false, false, false, false, false, false, false, // 0x90-0x97
	false, false, false, false, false, false, false, false, // 0x98-0x9f
	false, false, false, false, false, false, false, false, // 0xa0-0xa7
	false, false, false, false, false, false, false, false, // 0xa8-0xaf
	false, false, false, false, false, false, false, false, // 0xb0-0xb7
	false, false, false, false, false, false, false, false, // 0xb8-0xbf
	false, false, false, false, false, false, false, false, // 0xc0-0xc7
	false, false, false, false, false, false, false, false, // 0xc8-0xcf
	false, false, false, false, false, false, false, false, // 0xd0-0xd7
	false, false, false, false, false, false, false, false, // 0xd8-0xdf
	false, false, false, false, false, false, false, false, // 0xe0-0xe7
	false, false, false, false, false, false, false, false, // 0xe8-0xef
	false, false, false, false, false, false, false, false, // 0xf0-0xf7
	false, false, false, false, false, false, false, false, // 0xf8-0xff
}

var separatorTable = [256]bool{
	false, false, false, false, false, false, false, false, // 0x00-0x07
	false, true, false, false, false, false, false, false, // 0x08-0x0f
	false, false, false, false, false, false, false, false, // 0x10-0x17
	false, false, false, false, false, false, false, false, // 0x18-0x1f
	true, false, true, false, false, false, false, false, // 0x20-0x27
	true, true, false, false, true, false, false, true, // 0x28-0x2f
	false, false, false, false, false, false, false, false, // 0x30-0x37
	false, false, true, true, true, true, true, true, // 0x38-0x3f
	true, false, false, false, false, false, false, false, // 0x40-0x47
	false, false, false, false, false, false, false, false, // 0x48-0x4f
	false, false, false, false, false, false, false, false, // 0x50-0x57
	false, false, false, true, true, true, false, false, // 0x58-0x5f
	false, false, false, false, false, false, false, false, // 0x60-0x67
	false, false, false, false, false, false, false, false, // 0x68-0x6f
	false, false, false, false, false, false, false, false, // 0x70-0x77
	false, false, false, true, false, true, false, false, // 0x78-0x7f
	false, false, false, false, false, false, false, false, // 0x80-0x87
	false, false, false, false, false, false, false, false, // 0x88-0x8f
	false, false, false, false, false, false, false, false, // 0x90-0x97
	false, false, false, false, false, false, false, false, // 0x98-0x9f
	false, false, false, false, false, false, false, false, // 0xa0-0xa7
	false, false, false, false, false, false, false, false, // 0xa8-0xaf
	false, false, false, false, false, false, false, false, // 0xb0-0xb7
	false, false, false, false, false, false, false, false, // 0xb8-0xbf
	false, false, false, false, false, false, false, false, // 0xc0-0xc7
	false, false, false, false, false, false, false, false, // 0xc8-0xcf
	false, false, false, false, false, false, false, false, // 0xd0-0xd7
	false, false, false, false, false, false, false, false, // 0xd8-0xdf
	false, false, false, false, false, false, false, false, // 0xe0-0xe7
	false, false, false, false, false, false, false, false, // 0xe8-0xef
	false, false, false, false, false, false, false, false, // 0xf0-0xf7
	false, false, false, false, false, false, false, false, // 0xf8-0xff
}

var encodedTable = [256]bool{
	true, true, true, true, true, true, true, true, // 0x00-0x07
	true, true, true, true, true, true, true, true, // 0x08-0x0f
	true, true, true, true, true, true, true, true, // 0x10-0x17
	true, true, true, true, true, true, true, true, // 0x18-0x1f
	true, true, true, true, true, true, true, true, // 0x20-0x27
	true, true, true, true, true, false, false, true, // 0x28-0x2f
	false, false, false, false, false, false, false, false, // 0x30-0x37
	false, false, true, true, true, true, true, true, // 0x38-0x3f
	true, false, false, false, false, false, false, false, // 0x40-0x47
	false, false, false, false, false, false, false, false, // 0x48-0x4f
	false, false, false, false, false, false, false, false, // 0x50-0x57
	false, false, false, true, true, true, true, false, // 0x58-0x5f
	true, false, false, false, false, false, false, false, // 0x60-0x67
	false, false, false, false, false, false, false, false, // 0x68-0x6f
	false, false, false, false, false, false, false, false, // 0x70-0x77
	false, false, false, true, true, true, false, true, // 0x78-0x7f
	true, true, true, true, true, true, true, true, // 0x80-0x87
	true, true, true, true, true, true, true, true, // 0x88-0x8f
	true, true, true, true, true, true, true, true, // 0x90-0x97
	true, true, true, true, true, true, true, true, // 0x98-0x9f
	true, true, true, true, true, true, true, true, // 0xa0-0xa7
	true, true, true, true, true, true, true, true, // 0xa8-0xaf
	true, true, true, true, true, true, true, true, // 0xb0-0xb7
	true, true, true, true, true, true, true, true, // 0xb8-0xbf
	true, true, true, true, true, true, true, true, // 0xc0-0xc7
	true, true, true, true, true, true, true, true, // 0xc8-0xcf
	true, true, true, true, true, true, true, true, // 0xd0-0xd7
	true, true, true, true, true, true, true, true, // 0xd8-0xdf
	true, true, true, true, true, true, true, true, // 0xe0-0xe7
	true, true, true, true, true, true, true, true, // 0xe8-0xef
	true, true, true, true, true, true, true, true, // 0xf0-0xf7
	true, true, true, true, true, true, true, true, // 0xf8-0xff
}

// IsToken 判断 byte 是否属于 RFC 7230 tchar 集合
func IsToken(b byte) bool {
	return tokenTable[b]
}

// IsSeparator 判断 byte 是否属于 HTTP 分隔符集合
func IsSeparator(b byte) bool {
	return separatorTable[b]
}

// IsEncoded 判断 byte 是否需要 percent-encode
//
// 覆盖 RFC 3986 的通用分隔符与子分隔符 以及浏览器/解析器额外要求转义的
// `< > \ ^ ` { } |`
func IsEncoded(b byte) bool {
	return encodedTable[b]
}

// IsVisible7Bit 判断 byte 是否为可见 ASCII 字节 (0x21-0x7E)
func IsVisible7Bit(b byte) bool {
	return b > 0x20 && b < 0x7F
}

// IsHex 判断 byte 是否为十六进制数字 采用区间比较而非查表
// 与原始实现 (rust-http-box byte.rs::hex_to_byte) 保持一致
func IsHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// HexValue 将一个十六进制字符转换为其数值 调用方必须先调用 IsHex 判断合法性
func HexValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
