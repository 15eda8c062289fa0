package handlers

import (
	"fmt"

	"github.com/specialistvlad/consolekit/internal/logger"
)

// Code classifies an error. The values follow the classic E_* bit set.
type Code int

const (
	CodeError            Code = 1
	CodeWarning          Code = 2
	CodeParse            Code = 4
	CodeNotice           Code = 8
	CodeCoreError        Code = 16
	CodeCoreWarning      Code = 32
	CodeCompileError     Code = 64
	CodeCompileWarning   Code = 128
	CodeUserError        Code = 256
	CodeUserWarning      Code = 512
	CodeUserNotice       Code = 1024
	CodeStrict           Code = 2048
	CodeRecoverableError Code = 4096
	CodeDeprecated       Code = 8192
	CodeUserDeprecated   Code = 16384
)

var codeNames = map[Code]string{
	CodeError:            "E_ERROR",
	CodeWarning:          "E_WARNING",
	CodeParse:            "E_PARSE",
	CodeNotice:           "E_NOTICE",
	CodeCoreError:        "E_CORE_ERROR",
	CodeCoreWarning:      "E_CORE_WARNING",
	CodeCompileError:     "E_COMPILE_ERROR",
	CodeCompileWarning:   "E_COMPILE_WARNING",
	CodeUserError:        "E_USER_ERROR",
	CodeUserWarning:      "E_USER_WARNING",
	CodeUserNotice:       "E_USER_NOTICE",
	CodeStrict:           "E_STRICT",
	CodeRecoverableError: "E_RECOVERABLE_ERROR",
	CodeDeprecated:       "E_DEPRECATED",
	CodeUserDeprecated:   "E_USER_DEPRECATED",
}

var codeSeverity = map[Code]string{
	CodeError:            logger.Critical,
	CodeCoreError:        logger.Critical,
	CodeParse:            logger.Alert,
	CodeCompileError:     logger.Alert,
	CodeWarning:          logger.Warning,
	CodeCoreWarning:      logger.Warning,
	CodeCompileWarning:   logger.Warning,
	CodeUserWarning:      logger.Warning,
	CodeUserError:        logger.Error,
	CodeRecoverableError: logger.Error,
	CodeNotice:           logger.Notice,
	CodeUserNotice:       logger.Notice,
	CodeStrict:           logger.Notice,
	CodeDeprecated:       logger.Notice,
	CodeUserDeprecated:   logger.Notice,
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CODE_%d", int(c))
}

// Severity is the log level an error with code c is recorded at. Codes
// outside the table map to DEBUG.
func (c Code) Severity() string {
	if level, ok := codeSeverity[c]; ok {
		return level
	}
	return logger.Debug
}
