package spec

// the fixed message catalog. nothing else is ever sent as a detail
const (
	MsgBadRequest     = "잘못된 요청입니다."
	MsgInternal       = "비정규 오류가 발생하여 요청을 처리하는데 실패했습니다."
	MsgNotImplemented = "아직 제공하지 않는 기능입니다."

	MsgAlbumDefined  = "요청하신 앨범을 생성했습니다."
	MsgAlbumExists   = "요청하신 앨범은 이미 존재하는 앨범입니다."
	MsgAlbumNotFound = "요청하신 앨범이 존재하지 않습니다."
	MsgAlbumModified = "요청하신 앨범을 수정했습니다."
	MsgAlbumRemoved  = "요청하신 앨범을 삭제했습니다."

	MsgMusicDefined  = "요청하신 음원을 생성했습니다."
	MsgMusicExists   = "요청하신 음악은 이미 존재하는 음악입니다."
	MsgMusicNotFound = "요청하신 음악이 존재하지 않습니다."
	MsgMusicModified = "요청하신 음원을 수정했습니다."
	MsgMusicRemoved  = "요청하신 음원을 삭제했습니다."

	MsgPartitionWritten  = "요청하신 파티션을 생성했습니다."
	MsgPartitionExists   = "요청하신 파티션이 이미 존재합니다."
	MsgPartitionNotFound = "요청하신 파티션이 존재하지 않습니다."
	MsgPartitionRemoved  = "요청하신 파티션을 삭제했습니다."
)
